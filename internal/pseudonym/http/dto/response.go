package dto

// PseudonymsResponse lists pseudonyms in the order of their source values.
type PseudonymsResponse struct {
	Field      string   `json:"field"`
	Throwaway  bool     `json:"throwaway"`
	Pseudonyms []string `json:"pseudonyms"`
}

// ListPseudonymsResponse is one page of a field's pseudonyms.
type ListPseudonymsResponse struct {
	PseudonymsResponse
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// MapToPseudonymsResponse builds a PseudonymsResponse, rendering nil as an empty list.
func MapToPseudonymsResponse(field string, throwaway bool, pseudonyms []string) PseudonymsResponse {
	if pseudonyms == nil {
		pseudonyms = []string{}
	}
	return PseudonymsResponse{
		Field:      field,
		Throwaway:  throwaway,
		Pseudonyms: pseudonyms,
	}
}
