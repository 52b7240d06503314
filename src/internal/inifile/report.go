package inifile

// Setting is one php.ini key/value pair to apply. Settings are applied
// in slice order so repeated runs are deterministic.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Report describes exactly what one Customize call changed.
type Report struct {
	Enabled        []string `json:"enabled"`
	AlreadyEnabled []string `json:"alreadyEnabled"`
	AlreadyLoaded  []string `json:"alreadyLoaded"`
	Missing        []string `json:"missing"`
	Added          []string `json:"added"`
	Updated        []string `json:"updated"`
	BackupPath     string   `json:"backupPath"`
}

func newReport() *Report {
	return &Report{
		Enabled:        []string{},
		AlreadyEnabled: []string{},
		AlreadyLoaded:  []string{},
		Missing:        []string{},
		Added:          []string{},
		Updated:        []string{},
	}
}

// Changed reports whether the call made any modification to the file.
func (r *Report) Changed() bool {
	return len(r.Enabled) > 0 || len(r.Added) > 0 || len(r.Updated) > 0
}
