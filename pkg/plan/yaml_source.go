package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/restokit/entitlement/pkg/featurepath"
	"github.com/restokit/entitlement/pkg/quota"
)

// fileSource loads the catalog from a YAML file. The file is re-read on
// every Load, so an explicit Catalog.Reload picks up edits.
type fileSource struct {
	path string
}

// NewFileSource returns a Source reading plans from the YAML file at path.
//
// Expected layout:
//
//	plans:
//	  - id: profesional
//	    name: Profesional
//	    tier: professional
//	    grants:
//	      allow: [sales.basico, sales.pedidos, mesas]
//	      deny: []
//	    quotas:
//	      usuarios: 7
//	      productos: 500
//	      sucursales: 2
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

type planFile struct {
	Plans []planDoc `yaml:"plans"`
}

type planDoc struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Tier        string           `yaml:"tier"`
	Grants      grantDoc         `yaml:"grants"`
	Quotas      map[string]int64 `yaml:"quotas"`
}

type grantDoc struct {
	Allow []string `yaml:"allow"`
	Deny  []string `yaml:"deny"`
}

// Load parses the file into validated Plan values. Tier names resolve here,
// once; downstream code only ever sees the tagged enum.
func (s *fileSource) Load(ctx context.Context) ([]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var file planFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	plans := make([]Plan, 0, len(file.Plans))
	for _, doc := range file.Plans {
		tier, err := ParseTier(doc.Tier)
		if err != nil {
			return nil, fmt.Errorf("%w: plan %q: %w", ErrInvalidPlanConfiguration, doc.ID, err)
		}

		grants := featurepath.NewTree()
		for _, path := range doc.Grants.Allow {
			if err := grants.Set(path, featurepath.DecisionAllow); err != nil {
				return nil, fmt.Errorf("%w: plan %q: %w", ErrInvalidPlanConfiguration, doc.ID, err)
			}
		}
		for _, path := range doc.Grants.Deny {
			if err := grants.Set(path, featurepath.DecisionDeny); err != nil {
				return nil, fmt.Errorf("%w: plan %q: %w", ErrInvalidPlanConfiguration, doc.ID, err)
			}
		}

		quotas := make(map[quota.Resource]int64, len(doc.Quotas))
		for res, max := range doc.Quotas {
			quotas[quota.Resource(res)] = max
		}

		plans = append(plans, Plan{
			ID:          doc.ID,
			Name:        doc.Name,
			Description: doc.Description,
			Tier:        tier,
			Grants:      grants,
			Quotas:      quotas,
		})
	}

	return plans, nil
}
