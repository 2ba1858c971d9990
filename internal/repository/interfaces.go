package repository

import "context"

// Source returns the raw bytes of one named snapshot document.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Files names the document behind each data source.
type Files struct {
	Teams      string `yaml:"teams"`
	Characters string `yaml:"characters"`
	Players    string `yaml:"players"`
	Rosters    string `yaml:"rosters"`
	IsoReco    string `yaml:"isoReco"`
	IsoIcons   string `yaml:"isoIcons"`
}

func DefaultFiles() Files {
	return Files{
		Teams:      "teams.json",
		Characters: "msf-characters.json",
		Players:    "joueurs.json",
		Rosters:    "rosters.json",
		IsoReco:    "iso-reco.json",
		IsoIcons:   "iso-icons.json",
	}
}
