package results

// Remark returns the feedback line for a finished session, followed by the
// time taken.
func Remark(s Summary) string {
	pct := s.ratio()

	var remark string
	switch s.GameName {
	case WordSearch:
		switch {
		case pct == 100:
			remark = "Excellent work! Your visual scanning and pattern recognition skills are sharp. You found all words efficiently."
		case pct >= 60:
			remark = "Good effort! Your language processing is solid, but there's room for improvement in visual attention."
		default:
			remark = "Keep practicing! Word search games can help improve your visual scanning and attention to detail."
		}
	case MemoryMatch:
		switch {
		case s.Score <= 15:
			remark = "Outstanding memory! You completed the game with minimal moves, showing excellent short-term memory retention."
		case s.Score <= 25:
			remark = "Good memory skills! With practice, you can reduce the number of moves needed to match all pairs."
		default:
			remark = "Memory games like this help strengthen neural pathways. Regular practice can significantly improve recall."
		}
	case MathChallenge:
		switch {
		case pct >= 90:
			remark = "Exceptional mathematical reasoning! Your executive function and calculation abilities are excellent."
		case pct >= 70:
			remark = "Solid performance! Your arithmetic skills are good, with potential for even better accuracy with practice."
		default:
			remark = "Mathematical challenges strengthen cognitive flexibility. Regular practice improves both speed and accuracy."
		}
	case JigsawPuzzle:
		switch {
		case s.Score <= 20:
			remark = "Impressive spatial reasoning! You completed the puzzle efficiently with excellent planning skills."
		case s.Score <= 40:
			remark = "Good visuospatial abilities! Your approach shows logical thinking and decent problem-solving strategies."
		default:
			remark = "Puzzles enhance spatial cognition and planning. The more you practice, the more efficient your strategies become."
		}
	case ClockDrawing:
		remark = "Clock drawing tasks assess visuospatial skills, executive function, and memory. Your completion shows engagement with these cognitive domains."
	}

	if remark == "" {
		return "Time taken: " + FormatTime(s.TimeTaken) + "."
	}
	return remark + " Time taken: " + FormatTime(s.TimeTaken) + "."
}

// Analysis is what the results screen displays for one summary.
type Analysis struct {
	Summary
	Percentage int    `json:"percentage"`
	Time       string `json:"time"`
	Remark     string `json:"remark"`
}

// Analyze builds the results screen view for s.
func Analyze(s Summary) Analysis {
	return Analysis{
		Summary:    s,
		Percentage: s.Percentage(),
		Time:       FormatTime(s.TimeTaken),
		Remark:     Remark(s),
	}
}
