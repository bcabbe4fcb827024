package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultAgentsPerGroup is the group size the PAMS exporter uses to split
// flat agent ids into (group, agent) pairs.
const DefaultAgentsPerGroup = 500

// InvalidAgent is the flat id given to a trade whose (group, agent) pair does
// not fit the group layout. It is negative, so no agent ever matches it.
const InvalidAgent = -1

// FlatAgentID maps a (group, agent) pair onto a flat agent id.
func FlatAgentID(group, agent, perGroup int) int {
	if perGroup <= 0 || group < 0 || agent < 0 || agent >= perGroup {
		return InvalidAgent
	}
	return group*perGroup + agent
}

// Options control how a dataset file is interpreted.
type Options struct {
	ID             ID
	Name           string
	AgentsPerGroup int
}

func (o Options) withDefaults() Options {
	if o.AgentsPerGroup <= 0 {
		o.AgentsPerGroup = DefaultAgentsPerGroup
	}
	if o.Name == "" {
		o.Name = fmt.Sprintf("Dataset %d", o.ID)
	}
	return o
}

// LoadFile loads a dataset, picking the decoder from the file extension.
// A ".parquet" path names the price file; trades are read from the sibling
// "<base>.trades.parquet" when it exists.
func LoadFile(path string, opts Options) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()

		d, err := DecodeJSON(f, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil
	case ".parquet":
		d, err := ReadParquet(path, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}
