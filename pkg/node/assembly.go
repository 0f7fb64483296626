package node

import (
	"iter"
	"strconv"
	"sync"

	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

// Assembly is a composite node exposing flags and model items.
type Assembly struct {
	base
	def      *AssemblyDefinition
	position int

	flags func() (*orderedMap[*Flag], error)
	model func() (*orderedMap[[]Model], error)
}

func newAssembly(doc *Document, parent Node, def *AssemblyDefinition, name, path string, value interface{}, position int) *Assembly {
	a := &Assembly{
		base:     base{doc: doc, parent: parent, name: name, path: path, value: value},
		def:      def,
		position: position,
	}
	a.flags = sync.OnceValues(func() (*orderedMap[*Flag], error) {
		return buildFlags(a, def.Flags)
	})
	a.model = sync.OnceValues(a.buildModel)
	return a
}

// Definition returns the assembly definition.
func (a *Assembly) Definition() *AssemblyDefinition {
	return a.def
}

func (a *Assembly) ItemType() item.Type   { return item.TypeAssembly }
func (a *Assembly) ContextNodeItem() Node { return a }
func (a *Assembly) Position() int         { return a.position }
func (a *Assembly) isModel()              {}

func (a *Assembly) Flags() ([]*Flag, error) {
	flags, err := a.flags()
	if err != nil {
		return nil, err
	}
	return flags.list(), nil
}

func (a *Assembly) FlagByName(name string) (*Flag, bool, error) {
	flags, err := a.flags()
	if err != nil {
		return nil, false, err
	}
	flag, ok := flags.get(name)
	return flag, ok, nil
}

func (a *Assembly) ModelItems() ([][]Model, error) {
	model, err := a.model()
	if err != nil {
		return nil, err
	}
	return model.list(), nil
}

func (a *Assembly) ModelItemsByName(name string) ([]Model, error) {
	model, err := a.model()
	if err != nil {
		return nil, err
	}
	items, ok := model.get(name)
	if !ok {
		return []Model{}, nil
	}
	return items, nil
}

// Children returns all model items flattened in document order.
func (a *Assembly) Children() ([]Model, error) {
	groups, err := a.ModelItems()
	if err != nil {
		return nil, err
	}
	var out []Model
	for _, group := range groups {
		out = append(out, group...)
	}
	return out, nil
}

// buildModel materializes the model item groups. It runs at most once per
// assembly.
func (a *Assembly) buildModel() (*orderedMap[[]Model], error) {
	model := newOrderedMap[[]Model](len(a.def.Model))
	for _, instance := range a.def.Model {
		var (
			name  string
			items []Model
		)

		switch inst := instance.(type) {
		case *AssemblyInstance:
			if inst == nil || inst.Definition == nil {
				return nil, unsupportedInstance(a, instance)
			}
			name = inst.EffectiveName()
			for position, v := range positioned(inst.ItemValuesOf(inst.ValueOf(a.value))) {
				items = append(items, newAssembly(a.doc, a, inst.Definition, name, childPath(a.path, name, position), v, position))
			}
		case *FieldInstance:
			if inst == nil || inst.Definition == nil {
				return nil, unsupportedInstance(a, instance)
			}
			name = inst.EffectiveName()
			for position, v := range positioned(inst.ItemValuesOf(inst.ValueOf(a.value))) {
				items = append(items, newField(a.doc, a, inst.Definition, name, childPath(a.path, name, position), v, position))
			}
		default:
			return nil, unsupportedInstance(a, instance)
		}

		if items == nil {
			items = []Model{}
		}
		if !model.put(name, items) {
			return nil, types.Errorf(types.ErrDuplicateEffectiveName,
				"assembly '%s' declares model instance '%s' more than once", a.path, name)
		}
	}

	a.doc.logger.Debug("materialized model items",
		"document", a.doc.id.String(),
		"path", a.path,
		"groups", model.size(),
	)
	return model, nil
}

func unsupportedInstance(a *Assembly, instance ModelInstance) error {
	return types.Errorf(types.ErrUnsupportedInstanceKind,
		"unsupported instance type '%T' in assembly '%s'", instance, a.path)
}

// positioned yields the present values with their 1-based positions. Absent
// values are skipped and take no position.
func positioned(values []interface{}) iter.Seq2[int, interface{}] {
	return func(yield func(int, interface{}) bool) {
		position := 0
		for _, v := range values {
			if isAbsent(v) {
				continue
			}
			position++
			if !yield(position, v) {
				return
			}
		}
	}
}

func childPath(parent, name string, position int) string {
	return parent + "/" + name + "[" + strconv.Itoa(position) + "]"
}

// buildFlags materializes the present flags of parent in declaration order.
func buildFlags(parent Node, instances []*FlagInstance) (*orderedMap[*Flag], error) {
	flags := newOrderedMap[*Flag](len(instances))
	declared := make(map[string]struct{}, len(instances))
	for _, instance := range instances {
		if instance == nil {
			return nil, types.Errorf(types.ErrUnsupportedInstanceKind,
				"nil flag instance in node '%s'", parent.Path())
		}
		name := instance.EffectiveName()
		if _, dup := declared[name]; dup {
			return nil, types.Errorf(types.ErrDuplicateEffectiveName,
				"node '%s' declares flag '%s' more than once", parent.Path(), name)
		}
		declared[name] = struct{}{}

		v := instance.ValueOf(parent.Value())
		if isAbsent(v) {
			continue
		}
		flags.put(name, newFlag(parent.Document(), parent, instance, parent.Path()+"/@"+name, v))
	}
	return flags, nil
}
