package models

// Finding represents the compliance state of a single operation
type Finding struct {
	Path        string
	Method      string
	OperationID string
	CurlCount   int
	Compliant   bool
	Problem     string
}

// CheckSummary represents the overall compliance results
type CheckSummary struct {
	TotalOperations int
	Compliant       int
	NonCompliant    int
	Findings        []Finding
}

// AddFinding adds a finding to the summary
func (s *CheckSummary) AddFinding(f Finding) {
	s.TotalOperations++
	s.Findings = append(s.Findings, f)
	if f.Compliant {
		s.Compliant++
	} else {
		s.NonCompliant++
	}
}
