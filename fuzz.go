package iges

func Fuzz(data []byte) int {
	m := NewModel(Options{})
	if err := m.ReadBytes(data); err != nil {
		return 0
	}
	return 1
}
