package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
)

const seedFileVersion = 1

type SeedUseCase struct {
	UseCase          string `yaml:"use_case" toml:"use_case"`
	Product          string `yaml:"product" toml:"product"`
	SuccessCriterion string `yaml:"success_criterion" toml:"success_criterion"`
	Measurement      string `yaml:"measurement" toml:"measurement"`
}

type seedFile struct {
	Version  int           `yaml:"version" toml:"version"`
	UseCases []SeedUseCase `yaml:"use_cases" toml:"use_cases"`
}

// LoadSeedFile reads catalog rows from a .yaml, .yml or .toml file.
func LoadSeedFile(path string) ([]SeedUseCase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}
	return ParseSeed(raw, filepath.Ext(path))
}

func ParseSeed(raw []byte, ext string) ([]SeedUseCase, error) {
	var file seedFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, errors.Wrap(err, "parse yaml seed")
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &file); err != nil {
			return nil, errors.Wrap(err, "parse toml seed")
		}
	default:
		return nil, errors.Errorf("unsupported seed file extension %q", ext)
	}
	if file.Version != seedFileVersion {
		return nil, errors.Errorf("unsupported seed file version: %d", file.Version)
	}
	for i := range file.UseCases {
		row := &file.UseCases[i]
		row.UseCase = strings.TrimSpace(row.UseCase)
		row.Product = strings.TrimSpace(row.Product)
		row.SuccessCriterion = strings.TrimSpace(row.SuccessCriterion)
		row.Measurement = strings.TrimSpace(row.Measurement)
		if row.UseCase == "" || row.Product == "" {
			return nil, errors.Errorf("seed row %d: use_case and product are required", i+1)
		}
	}
	return file.UseCases, nil
}

type SeedResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type SeedService struct {
	useCases usecase.Repository
}

func NewSeedService(useCases usecase.Repository) *SeedService {
	return &SeedService{useCases: useCases}
}

// Apply inserts rows whose (UseCase, Product) pair is not in the catalog yet.
// Either every new row is inserted or none is.
func (s *SeedService) Apply(ctx context.Context, rows []SeedUseCase) (SeedResult, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (SeedResult, error) {
		var res SeedResult
		for _, row := range rows {
			u := usecase.New(row.UseCase, row.Product, row.SuccessCriterion, row.Measurement)
			exists, err := s.useCases.Exists(txCtx, u.Name(), u.Product())
			if err != nil {
				return SeedResult{}, err
			}
			if exists {
				res.Skipped++
				continue
			}
			if _, err := s.useCases.Create(txCtx, u); err != nil {
				return SeedResult{}, err
			}
			res.Inserted++
		}
		return res, nil
	})
}
