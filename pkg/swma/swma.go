package swma

// SlidingWindow averages over the last windowSize values, or over the values
// seen so far while the window is still filling.
type SlidingWindow struct {
	count      int
	sum        float64
	window     []float64
	windowSize int
}

func NewSlidingWindow(windowSize int) *SlidingWindow {
	if windowSize < 1 {
		windowSize = 1
	}
	return &SlidingWindow{
		window:     make([]float64, windowSize),
		windowSize: windowSize,
	}
}

func (s *SlidingWindow) Add(value float64) float64 {
	s.sum += value
	s.sum -= s.window[0]
	s.window = append(s.window[1:], value)
	if s.count < s.windowSize {
		s.count++
	}
	return s.Average()
}

func (s *SlidingWindow) Average() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

func (s *SlidingWindow) Reset() {
	s.count = 0
	s.sum = 0
	s.window = make([]float64, s.windowSize)
}

func (s *SlidingWindow) Window() []float64 {
	return s.window[s.windowSize-s.count:]
}

func (s *SlidingWindow) WindowSize() int {
	return s.windowSize
}
