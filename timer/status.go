package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ayoisaiah/ultradian/internal/osutil"
	"github.com/ayoisaiah/ultradian/internal/phase"
)

// Status is the snapshot of the running session written to the status file.
type Status struct {
	SegmentStart time.Time   `json:"segment_start"`
	SegmentEnd   time.Time   `json:"segment_end"`
	Phase        phase.Phase `json:"phase"`
	Cycle        int         `json:"cycle"`
	Cycles       int         `json:"cycles"`
}

func (m tickMsg) time() time.Time {
	return time.Time(m)
}

func (t *Timer) writeStatusFile() error {
	if t.statusPath == "" {
		return nil
	}

	return WriteStatus(t.statusPath, t.state)
}

// WriteStatus saves s to the status file at path.
func WriteStatus(path string, s phase.State) error {
	b, err := json.Marshal(Status{
		SegmentStart: s.SegmentStart,
		SegmentEnd:   s.SegmentEnd,
		Phase:        s.Phase,
		Cycle:        s.Cycle,
		Cycles:       s.Cycles,
	})
	if err != nil {
		return err
	}

	return osutil.WriteFileAtomic(path, b)
}

// ReadStatus loads the state of the running session at now from the status
// file at path. A missing file yields an idle state.
func ReadStatus(path string, now time.Time) (phase.State, error) {
	idle := phase.State{Phase: phase.Idle, Index: -1}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return idle, nil
	}

	if err != nil {
		return idle, errReadStatus.Wrap(err)
	}

	var st Status

	if err = json.Unmarshal(b, &st); err != nil {
		return idle, errReadStatus.Wrap(err)
	}

	s := phase.State{
		Phase:        st.Phase,
		Cycle:        st.Cycle,
		Cycles:       st.Cycles,
		SegmentStart: st.SegmentStart,
		SegmentEnd:   st.SegmentEnd,
	}

	if st.Phase == phase.Complete || st.Phase == phase.Idle {
		return s, nil
	}

	remaining := int(st.SegmentEnd.Sub(now).Seconds())
	if remaining < 0 {
		// written by an instance that stopped ticking
		return idle, nil
	}

	s.Remaining = remaining

	return s, nil
}

var shortLabels = map[phase.Phase]string{
	phase.Grog:     "Grog",
	phase.Peak:     "Peak",
	phase.Trough:   "Trough",
	phase.Complete: "Complete",
}

// FormatStatus renders s as a single line such as
// "[Peak 1/3]: 84:59 (until 09:30)". Idle states render as an empty string.
func FormatStatus(s phase.State, layout string) string {
	label, ok := shortLabels[s.Phase]
	if !ok {
		return ""
	}

	if s.Phase == phase.Complete {
		return "[" + label + "]"
	}

	if s.Cycle > 0 {
		label = fmt.Sprintf("%s %d/%d", label, s.Cycle, s.Cycles)
	}

	return fmt.Sprintf(
		"[%s]: %s (until %s)",
		label,
		formatTimeRemaining(s.Remaining),
		s.SegmentEnd.Format(layout),
	)
}
