package model

type Game struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty"`
	Tags        []string `json:"tags" yaml:"tags"`
	Route       string   `json:"route" yaml:"route"`
	Featured    bool     `json:"featured" yaml:"featured"`
}
