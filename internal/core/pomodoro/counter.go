package pomodoro

// breakCounter counts short breaks taken since the last longer break or reset.
type breakCounter struct {
	count int
}

func (counter *breakCounter) increment() {
	counter.count++
}

func (counter *breakCounter) reset() {
	counter.count = 0
}

func (counter *breakCounter) value() int {
	return counter.count
}
