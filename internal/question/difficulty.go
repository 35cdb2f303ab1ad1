package question

// AdjustDifficulty steps one level up after a correct answer and one level down
// otherwise. Only the side being moved toward is clamped, so an input already
// outside [MinDifficulty, MaxDifficulty] can stay outside it.
func AdjustDifficulty(current int, wasCorrect bool) int {
	if wasCorrect {
		return min(current+1, MaxDifficulty)
	}
	return max(current-1, MinDifficulty)
}
