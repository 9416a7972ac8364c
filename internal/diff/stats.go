// stats.go computes change statistics from a produced operation sequence.
package diff

// Statistics summarizes a diff: byte counts per kind, their percentages, and
// the number of change blocks (maximal contiguous runs of non-Equal
// operations; an Equal operation closes the current run).
//
// PercentDeleted and PercentUnchanged are relative to the original length,
// PercentInserted to the modified length. Two empty inputs count as fully
// unchanged.
type Statistics struct {
	CharsDeleted     int     `json:"chars_deleted"`
	CharsInserted    int     `json:"chars_inserted"`
	CharsUnchanged   int     `json:"chars_unchanged"`
	PercentDeleted   float64 `json:"percent_deleted"`
	PercentInserted  float64 `json:"percent_inserted"`
	PercentUnchanged float64 `json:"percent_unchanged"`
	ChangeBlocks     int     `json:"change_blocks"`
}

func calculateStats(ops []Operation, originalLen, modifiedLen int) Statistics {
	var s Statistics
	inBlock := false
	for _, op := range ops {
		switch op.Op {
		case OpDelete:
			s.CharsDeleted += len(op.Text)
		case OpInsert:
			s.CharsInserted += len(op.Text)
		default:
			s.CharsUnchanged += len(op.Text)
		}
		if op.Op == OpEqual {
			inBlock = false
		} else if !inBlock {
			s.ChangeBlocks++
			inBlock = true
		}
	}

	s.PercentDeleted = percent(s.CharsDeleted, originalLen)
	s.PercentInserted = percent(s.CharsInserted, modifiedLen)
	s.PercentUnchanged = percent(s.CharsUnchanged, originalLen)
	if originalLen == 0 && modifiedLen == 0 {
		s.PercentUnchanged = 100
	}
	return s
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
