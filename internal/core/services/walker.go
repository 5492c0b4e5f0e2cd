package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// walkState is owned by a single import. Nothing in it is shared between runs.
type walkState struct {
	spec      *domain.MappingSpec
	selection SelectionMapping
	pools     *domain.Pools
	rootKey   string
	root      *domain.Section
	upload    string
	diags     *domain.Diagnostics

	// archives collects the references persisted so far, in order.
	archives []domain.Reference
}

// Walker constructs instances for every class entry of a mapping
// specification and attaches them to the root section.
type Walker struct {
	sink driven.PersistenceSink
}

// NewWalker creates a walker that persists Archive instances to sink.
func NewWalker(sink driven.PersistenceSink) *Walker {
	return &Walker{sink: sink}
}

// Walk processes the class entries in declaration order, then names the
// root and persists it. Per-key failures are reported in st.diags; only a
// structural fault or a persistence failure stops the walk.
func (w *Walker) Walk(ctx context.Context, st *walkState) (domain.Reference, error) {
	report := newReporter(st.diags)
	binder := NewBinder(st.diags)

	for _, cs := range st.spec.Classes {
		if err := w.walkClass(ctx, st, report, binder, cs); err != nil {
			return domain.Reference{}, err
		}
	}

	rootSpec, _ := st.spec.Class(st.rootKey)
	name := w.synthesize(report, st, rootSpec, 0)
	st.root.Name = name

	ref, err := w.sink.Persist(ctx, st.root, st.upload, w.archiveName(rootSpec, name, 0))
	if err != nil {
		return domain.Reference{}, fmt.Errorf("persist root: %w", err)
	}
	return ref, nil
}

func (w *Walker) walkClass(ctx context.Context, st *walkState, report reporter, binder *Binder, cs domain.ClassSpec) error {
	if !cs.Type.Valid() {
		logger.Debug("Skipping %s: unknown type %q", cs.Key, cs.Type)
		return nil
	}

	var typ *domain.SectionType
	if cs.Type == domain.KindMain {
		// Every main entry binds onto the one root instance.
		typ = st.root.Type
	} else {
		if cs.Attribute == "" || !st.root.Type.HasAttribute(cs.Attribute) {
			report.warn(domain.CodeMissingAttribute, cs.Key, cs.Attribute,
				"The schema %s does not have an attribute %q", st.root.Type.QualifiedName(), cs.Attribute)
			return nil
		}
		var ok bool
		typ, ok = st.selection[cs.Key]
		if !ok {
			report.warn(domain.CodeUnresolvedType, cs.Key, "", "Skipping %s: class %s was not resolved", cs.Key, cs.Class)
			return nil
		}
	}

	limit := cs.Repeats.Limit()

	var produced []any
	for idx := 0; idx < limit; idx++ {
		value, found, err := w.produce(ctx, st, report, binder, cs, typ, idx)
		if err != nil {
			return err
		}
		if !found && idx > 0 {
			break
		}
		produced = append(produced, value)
	}

	if cs.Type == domain.KindMain {
		return nil
	}
	return w.attach(st, report, cs, produced)
}

// produce constructs the instance for repetition idx. found is false when a
// table driving the class has no row at idx; such repetitions past index 0
// are not constructed.
func (w *Walker) produce(ctx context.Context, st *walkState, report reporter, binder *Binder,
	cs domain.ClassSpec, typ *domain.SectionType, idx int) (any, bool, error) {
	found := w.found(st, cs, idx)
	if !found && idx > 0 {
		return nil, false, nil
	}

	var inst *domain.Section
	switch cs.Type {
	case domain.KindMain:
		inst = st.root
	case domain.KindArchive:
		logger.Info("Creating Archive %s", cs.Key)
		inst = domain.NewSection(typ)
	default:
		logger.Info("Creating Subsection %s", cs.Key)
		inst = domain.NewSection(typ)
	}

	for _, b := range st.spec.DataFor(cs.Key) {
		binder.BindData(inst, cs.Key, st.pools.Data, b)
	}
	for _, b := range st.spec.TextFor(cs.Key) {
		binder.BindText(inst, cs.Key, st.pools.Text, b)
	}
	for _, b := range st.spec.TableFor(cs.Key) {
		for _, rec := range st.pools.TablesNamed(b.Table) {
			row, ok := rec.Row(idx)
			if !ok {
				continue
			}
			binder.BindCell(inst, cs.Key, row, b)
		}
	}

	if cs.Type == domain.KindMain {
		return inst, found, nil
	}

	if cs.Name != "" {
		inst.Name = w.synthesize(report, st, cs, idx)
	}

	if cs.Type != domain.KindArchive {
		return inst, found, nil
	}
	ref, err := w.sink.Persist(ctx, inst, st.upload, w.archiveName(cs, inst.Name, idx))
	if err != nil {
		return nil, false, fmt.Errorf("persist archive %s[%d]: %w", cs.Key, idx, err)
	}
	st.archives = append(st.archives, ref)
	return ref, found, nil
}

// found reports whether every table driving cs has a row at idx. Without a
// driving table only index 0 exists.
func (w *Walker) found(st *walkState, cs domain.ClassSpec, idx int) bool {
	var records int
	for _, name := range st.spec.TablesDriving(cs.Key) {
		for _, rec := range st.pools.TablesNamed(name) {
			records++
			if _, ok := rec.Row(idx); !ok {
				return false
			}
		}
	}
	if records == 0 {
		return idx == 0
	}
	return true
}

func (w *Walker) attach(st *walkState, report reporter, cs domain.ClassSpec, produced []any) error {
	var value any
	if cs.Repeats.AttachesList() {
		value = produced
	} else {
		if len(produced) == 0 {
			return fmt.Errorf("%w: %s produced no instance", domain.ErrStructuralFault, cs.Key)
		}
		value = produced[0]
	}

	if err := st.root.Set(cs.Attribute, value); err != nil {
		report.warn(domain.CodeAttachFailed, cs.Key, cs.Attribute, "Could not attach %s: %v", cs.Key, err)
	}
	return nil
}

func (w *Walker) synthesize(report reporter, st *walkState, cs domain.ClassSpec, idx int) string {
	name, err := SynthesizeName(cs.Name, st.pools.Data)
	if err != nil {
		report.warn(domain.CodeNameReference, cs.Key, cs.Name, "Name of %s[%d] is incomplete: %v", cs.Key, idx, err)
	}
	return name
}

// archiveName falls back to the class key when the template produced
// nothing. Repetitions after the first get an index suffix.
func (w *Walker) archiveName(cs domain.ClassSpec, name string, idx int) string {
	if name == "" {
		name = cs.Key
	}
	if idx == 0 {
		return name
	}
	return fmt.Sprintf("%s_%d", name, idx)
}
