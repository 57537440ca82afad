package fix

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/signadot/wbproto/debug"
	"github.com/signadot/wbproto/ir"
)

// ErrSkip is wrapped by the per entity errors of a pass.
var ErrSkip = errors.New("skipped")

type Pass interface {
	Name() string
	Apply(doc *ir.Document, log *slog.Logger) (*Report, error)
}

// Report counts what a pass did.  Matched entities are either changed,
// skipped because of an error, or already in the wanted form.
type Report struct {
	Pass    string
	Matched int
	Changed int
	Skipped int
	Errors  []error
}

func (r *Report) String() string {
	return fmt.Sprintf("%s: matched %d changed %d skipped %d", r.Pass, r.Matched, r.Changed, r.Skipped)
}

// Run applies passes to doc in order.  It stops at the first pass that
// fails as a whole.
func Run(doc *ir.Document, log *slog.Logger, passes ...Pass) ([]*Report, error) {
	res := make([]*Report, 0, len(passes))
	for _, p := range passes {
		rep, err := p.Apply(doc, log)
		if err != nil {
			return res, fmt.Errorf("pass %s: %w", p.Name(), err)
		}
		log.Info("pass", "name", rep.Pass, "matched", rep.Matched, "changed", rep.Changed, "skipped", rep.Skipped)
		res = append(res, rep)
	}
	return res, nil
}

// each calls f on every handle in hs still reachable when its turn comes.
// f reports whether it changed the document.  Errors and panics are
// recorded in rep and do not stop the iteration.
func each(doc *ir.Document, hs []ir.Handle, log *slog.Logger, rep *Report, f func(ir.Handle) (bool, error)) {
	for _, h := range hs {
		if !doc.Reachable(h) {
			log.Debug("detached", "pass", rep.Pass, "line", doc.Get(h).Line)
			continue
		}
		rep.Matched++
		changed, err := guard(h, f)
		if err != nil {
			err = fmt.Errorf("%w %s: %w", ErrSkip, doc.Path(h), err)
			rep.Skipped++
			rep.Errors = append(rep.Errors, err)
			log.Warn("skip", "pass", rep.Pass, "path", doc.Path(h), "line", doc.Get(h).Line, "error", err)
			continue
		}
		if changed {
			rep.Changed++
			if debug.Pass() {
				debug.Logf("%s: changed %s\n", rep.Pass, doc.Path(h))
			}
		}
	}
}

func guard(h ir.Handle, f func(ir.Handle) (bool, error)) (changed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f(h)
}

// ofType filters hs to nodes of type typ.
func ofType(doc *ir.Document, hs []ir.Handle, typ string) []ir.Handle {
	res := hs[:0:0]
	for _, h := range hs {
		if doc.Get(h).Type() == typ {
			res = append(res, h)
		}
	}
	return res
}

// named filters hs to entities named name.
func named(doc *ir.Document, hs []ir.Handle, name string) []ir.Handle {
	res := hs[:0:0]
	for _, h := range hs {
		if doc.Get(h).Name == name {
			res = append(res, h)
		}
	}
	return res
}
