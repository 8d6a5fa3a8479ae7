package roster

// Progress observes the raw records flowing out of a reader: Tick fires
// once per record, Done once when the source is exhausted or the read
// stops. Purely observational; output never depends on it.
type Progress interface {
	Tick()
	Done()
}

type noProgress struct{}

func (noProgress) Tick() {}
func (noProgress) Done() {}
