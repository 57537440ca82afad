package fix

import (
	"log/slog"
	"strconv"

	"github.com/signadot/wbproto/ir"
)

const (
	// DefaultStageThreshold is the stage a maxTorque field must exceed to
	// be rewritten.
	DefaultStageThreshold = 6
	DefaultMaxTorque      = 0.001
)

// MotorTorque limits the maxTorque of rotational motors nested deeper than
// StageThreshold by replacing the field with one holding MaxTorque.  Zero
// values select DefaultStageThreshold and DefaultMaxTorque.
type MotorTorque struct {
	StageThreshold int
	MaxTorque      float64
}

func (m *MotorTorque) Name() string { return "motor-torque" }

func (m *MotorTorque) threshold() int {
	if m.StageThreshold == 0 {
		return DefaultStageThreshold
	}
	return m.StageThreshold
}

func (m *MotorTorque) maxTorque() float64 {
	if m.MaxTorque == 0 {
		return DefaultMaxTorque
	}
	return m.MaxTorque
}

// Content returns the maxTorque value text written by the pass.
func (m *MotorTorque) Content() string {
	return strconv.FormatFloat(m.maxTorque(), 'g', -1, 64)
}

func (m *MotorTorque) Apply(doc *ir.Document, log *slog.Logger) (*Report, error) {
	rep := &Report{Pass: m.Name()}
	var hs []ir.Handle
	for _, h := range ofType(doc, doc.Search("RotationalMotor"), "RotationalMotor") {
		mt, ok := doc.Child(h, "maxTorque")
		if !ok {
			continue
		}
		hs = append(hs, mt)
	}
	content := m.Content()
	each(doc, hs, log, rep, func(h ir.Handle) (bool, error) {
		e := doc.Get(h)
		if e.Stage <= m.threshold() || (e.Kind == ir.PropertyKind && e.Content == content) {
			return false, nil
		}
		if err := doc.SetCurrent(h); err != nil {
			return false, err
		}
		return true, doc.Update(doc.NewProperty(e.Name, content, e.Stage))
	})
	return rep, nil
}
