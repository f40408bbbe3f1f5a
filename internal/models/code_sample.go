package models

// CodeSample is a documented example request for a single client tool
type CodeSample struct {
	Lang   string `yaml:"lang" json:"lang"`
	Source string `yaml:"source" json:"source"`
}
