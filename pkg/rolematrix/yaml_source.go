package rolematrix

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSource loads the matrix from a YAML file, re-read on every Load.
type fileSource struct {
	path string
}

// NewFileSource returns a Source reading role grants from the YAML file at path.
//
// Expected layout:
//
//	grants:
//	  - plan: profesional
//	    role: cajero
//	    allowed: [sales.basico, sales.pedidos, egresos.basico]
//	    denied: [inventory, dashboard, egresos.avanzado]
//	    provisions: [cajero]
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

type matrixFile struct {
	Grants []grantDoc `yaml:"grants"`
}

type grantDoc struct {
	Plan       string   `yaml:"plan"`
	Role       string   `yaml:"role"`
	Allowed    []string `yaml:"allowed"`
	Denied     []string `yaml:"denied"`
	Provisions []string `yaml:"provisions"`
}

func (s *fileSource) Load(ctx context.Context) ([]RoleGrant, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadMatrix, err)
	}

	var file matrixFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadMatrix, err)
	}

	grants := make([]RoleGrant, 0, len(file.Grants))
	for _, doc := range file.Grants {
		grants = append(grants, RoleGrant{
			PlanID:     doc.Plan,
			Role:       doc.Role,
			Allowed:    doc.Allowed,
			Denied:     doc.Denied,
			Provisions: doc.Provisions,
		})
	}
	return grants, nil
}
