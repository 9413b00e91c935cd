package dbclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type ClientType string

const (
	None  ClientType = "None"
	Kusto ClientType = "Kusto"
)

// Scope tells which level of the coverage report a Data row describes.
type Scope string

const (
	OverallScope Scope = "overall"
	TargetScope  Scope = "target"
	FileScope    Scope = "file"
)

// DbClient interface for storing xccover data.
type DbClient interface {
	Store(context context.Context, data *Data) error
}

type Data struct {
	PreciseTimestamp time.Time `json:"preciseTimestamp"` // time send to db
	Scope            Scope     `json:"scope"`            // overall, target or file
	Target           string    `json:"target"`           // build target name, empty for the overall row
	FilePath         string    `json:"filePath"`         // source file path, only for file rows
	ExecutableLines  int64     `json:"executableLines"`  // the lines that account for coverage
	CoveredLines     int64     `json:"coveredLines"`     // the lines covered by test
	Coverage         float64   `json:"coverage"`         // line coverage percent
	CommitID         string    `json:"commitId"`         // HEAD commit of the repository under test
	Branch           string    `json:"branch"`           // checked out branch, empty when HEAD is detached

	Extra map[string]interface{} // extra data that passing accordingly
}

var ErrUnsupportedDBType = errors.New(`supportted type are "Kusto", unsupported DB client type`)

type DBOption struct {
	DataCollectionEnabled bool
	DbType                ClientType
	KustoOption           KustoOption
}

func (o *DBOption) Validate() error {
	if !o.DataCollectionEnabled {
		return nil
	}

	if o.DbType == Kusto {
		return o.KustoOption.Validate()
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedDBType, o.DbType)
}

func (o *DBOption) GetDbClient(logger logrus.FieldLogger) (DbClient, error) {
	switch o.DbType {
	case Kusto:
		o.KustoOption.Logger = logger
		return NewKustoClient(&o.KustoOption)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDBType, o.DbType)
	}
}
