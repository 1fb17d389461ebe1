package sumonet

import (
	"strconv"
)

// Request is one row of a junction's right-of-way table. A '1' at position i
// of Response means this movement must yield to movement i; Foes lists the
// conflicting movements regardless of priority.
type Request struct {
	Index    int
	Response string
	Foes     string
	Cont     bool

	parentJunction *Junction
}

// NewRequest builds a Request from a flat attribute record.
func NewRequest(attrib map[string]string) *Request {
	index, _ := strconv.Atoi(attrib["index"])
	cont, _ := strconv.ParseBool(attrib["cont"])
	return &Request{
		Index:    index,
		Response: attrib["response"],
		Foes:     attrib["foes"],
		Cont:     cont,
	}
}

// ParentJunction returns the junction owning this request.
func (request *Request) ParentJunction() *Junction {
	return request.parentJunction
}
