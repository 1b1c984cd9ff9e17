package conflicts

import (
	"github.com/nbmend/nbmend/logging"
)

// Result is the outcome for one file of a batch.
type Result struct {
	Filename string
	Err      error
}

// MergeAll resolves each conflict independently in input order,
// writing successful merges over the conflicted files. A failure on
// one file never blocks the rest, and nothing is written for a failed
// file. progress, when non-nil, is invoked once per file.
func MergeAll(files []ConflictFile, opts Options, progress func()) []Result {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		err := mergeAndWrite(f, opts)
		if err != nil {
			logging.Errorf("%s: %v", f.Filename, err)
		}
		results = append(results, Result{Filename: f.Filename, Err: err})
		if progress != nil {
			progress()
		}
	}
	return results
}

func mergeAndWrite(f ConflictFile, opts Options) error {
	merged, err := Merge(f, opts)
	if err != nil {
		return err
	}
	// The working tree copy holds textual conflict markers; replace it.
	return merged.WriteFile(f.Filename, true)
}
