package deploy

import "path/filepath"

// Decision is the conflict policy outcome for one destination. Conflicts
// are policy, never errors.
type Decision int

const (
	// DecisionWrite: destination absent, write it.
	DecisionWrite Decision = iota
	// DecisionSkipSilent: the operator is expected to already have this
	// file; leave it alone without a message.
	DecisionSkipSilent
	// DecisionOverwrite: the file must always reflect the current
	// install; replace it unconditionally.
	DecisionOverwrite
	// DecisionAdvise: leave the existing file untouched and tell the
	// operator to merge by hand.
	DecisionAdvise
)

// forcedOverwrite lists destination basenames that are regenerated on
// every run regardless of existing content.
var forcedOverwrite = map[string]bool{
	"urls.py": true,
}

// skipSilently lists destination basenames users commonly customize;
// an existing copy is kept without a warning.
var skipSilently = map[string]bool{
	"__init__.py": true,
	"README.md":   true,
}

// DecideCopy returns the policy for a copy destination. Pure: the caller
// supplies the observed existence so the table can be tested without a
// filesystem.
func DecideCopy(dst string, exists bool) Decision {
	if !exists {
		return DecisionWrite
	}
	base := filepath.Base(dst)
	if skipSilently[base] {
		return DecisionSkipSilent
	}
	if forcedOverwrite[base] {
		return DecisionOverwrite
	}
	return DecisionAdvise
}

// DecideRender returns the policy for a render destination: an existing
// file is never overwritten.
func DecideRender(exists bool) Decision {
	if exists {
		return DecisionAdvise
	}
	return DecisionWrite
}
