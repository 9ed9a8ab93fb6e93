package notifier

import (
	"fmt"
	"io"
	"time"

	"github.com/obentoo/upgrade-notifier/internal/common/output"
	"github.com/obentoo/upgrade-notifier/internal/frequency"
	"github.com/obentoo/upgrade-notifier/internal/state"
)

// Status prints the stored frequency, the last notification time and whether
// the next invocation would query for a release.
func Status(w io.Writer, store *state.Store, now func() time.Time) error {
	st, err := store.Load()
	if err != nil {
		return err
	}

	decision := frequency.NewGate(frequency.WithNowFunc(now)).Evaluate(st.Frequency, st.LastNotified)

	last := "never"
	if st.HasTimestamp() && !st.LastNotified.Equal(state.Sentinel) {
		last = fmt.Sprintf("%s (%s ago)",
			st.LastNotified.Format(time.RFC3339), decision.Elapsed.Round(time.Second))
	}

	output.KeyValue(w, "state file", store.Path())
	output.KeyValue(w, "frequency", output.FormatFrequency(string(st.Frequency)))
	output.KeyValue(w, "last notified", last)
	output.KeyValue(w, "next check", output.FormatGate(decision.Open))
	return nil
}
