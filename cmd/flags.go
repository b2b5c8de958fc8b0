package cmd

import (
	"github.com/rnwolfe/habit/internal/frequency"
	"github.com/spf13/pflag"
)

// maskValue is a --days flag accepting presets ("daily", "weekdays") or day
// lists ("mon,wed,fri").
type maskValue struct {
	mask frequency.Mask
	set  bool
}

var _ pflag.Value = (*maskValue)(nil)

func (m *maskValue) String() string {
	if !m.set {
		return ""
	}
	return m.mask.String()
}

func (m *maskValue) Set(s string) error {
	mask, err := frequency.ParseMask(s)
	if err != nil {
		return err
	}
	m.mask = mask
	m.set = true
	return nil
}

func (m *maskValue) Type() string { return "days" }

func (m *maskValue) reset() {
	m.mask = 0
	m.set = false
}
