package domain

// Prompt is a reusable generation instruction.
type Prompt struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// Customer holds context about a client that can be prepended to a prompt.
type Customer struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// CustomerSelection records which customers are selected for one prompt.
type CustomerSelection map[string]bool

// SelectionMap maps a prompt name to its customer selection.
type SelectionMap map[string]CustomerSelection

// Selected returns the names of the selected customers.
func (s CustomerSelection) Selected() []string {
	names := make([]string, 0, len(s))
	for name, on := range s {
		if on {
			names = append(names, name)
		}
	}
	return names
}
