package qkernel

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ModuleTag names the dashboard page an experiment came from.
type ModuleTag string

const (
	ModuleBloch           ModuleTag = "bloch"
	ModuleInterference    ModuleTag = "interference"
	ModuleEntanglement    ModuleTag = "entanglement"
	ModuleNoise           ModuleTag = "noise"
	ModuleVQE             ModuleTag = "vqe"
	ModuleQAOA            ModuleTag = "qaoa"
	ModuleQML             ModuleTag = "qml"
	ModuleErrorCorrection ModuleTag = "error_correction"
	ModuleTopology        ModuleTag = "topology"
	ModuleComplexity      ModuleTag = "complexity"
)

var knownModules = map[ModuleTag]bool{
	ModuleBloch:           true,
	ModuleInterference:    true,
	ModuleEntanglement:    true,
	ModuleNoise:           true,
	ModuleVQE:             true,
	ModuleQAOA:            true,
	ModuleQML:             true,
	ModuleErrorCorrection: true,
	ModuleTopology:        true,
	ModuleComplexity:      true,
}

func (m ModuleTag) Valid() bool {
	return knownModules[m]
}

// Values maps names to primitives, sequences or nested Values.
type Values map[string]any

/*
Record is one immutable experiment outcome. The ID is fixed at append time
and survives serialization unchanged. Parameters and Results hold plain
normalized data only: float64, string, bool, nil, []any and map[string]any.
*/
type Record struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Module     ModuleTag `json:"module"`
	Parameters Values    `json:"parameters"`
	Results    Values    `json:"results"`
}

/*
Log is the append-only experiment history of one session. It is owned by
the session that created it and is not safe for concurrent mutation.
*/
type Log struct {
	records  []Record
	platform string
	clock    func() time.Time
	entropy  io.Reader
}

/*
NewLog creates an empty log. The platform names the exporting application,
the clock stamps records and exports, and entropy feeds the random component
of record ids.
*/
func NewLog(platform string, clock func() time.Time, entropy io.Reader) *Log {
	if platform == "" {
		platform = platformName
	}
	if clock == nil {
		clock = time.Now
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Log{platform: platform, clock: clock, entropy: entropy}
}

/*
Append stamps and stores a new record. The id is the first 8 hex characters
of SHA-256 over the timestamp and a random UUID drawn from the log's entropy.
Parameters and results are normalized into a private copy, so nothing the
caller holds can reach a stored record afterwards.
*/
func (l *Log) Append(module ModuleTag, parameters, results Values) (Record, error) {
	if !module.Valid() {
		return Record{}, newError("log append", ErrDomain, "unknown module %q", module)
	}

	params, err := normalizeValues(parameters)
	if err != nil {
		return Record{}, err
	}
	res, err := normalizeValues(results)
	if err != nil {
		return Record{}, err
	}

	stamp := l.clock().UTC().Truncate(time.Second)
	nonce, err := uuid.NewRandomFromReader(l.entropy)
	if err != nil {
		return Record{}, fmt.Errorf("log append: draw id nonce: %w", err)
	}

	sum := sha256.Sum256([]byte(stamp.Format(time.RFC3339) + nonce.String()))
	record := Record{
		ID:         hex.EncodeToString(sum[:])[:8],
		Timestamp:  stamp,
		Module:     module,
		Parameters: params,
		Results:    res,
	}

	l.records = append(l.records, record)
	return record.clone(), nil
}

// Records returns deep copies of the records in append order.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	for i, r := range l.records {
		out[i] = r.clone()
	}
	return out
}

func (r Record) clone() Record {
	r.Parameters = clonePlain(r.Parameters).(map[string]any)
	r.Results = clonePlain(r.Results).(map[string]any)
	return r
}

func (l *Log) Len() int {
	return len(l.records)
}

/*
Export is the serialized document shape:
{"export_timestamp", "platform", "experiments": [...]}.
*/
type Export struct {
	ExportTimestamp time.Time `json:"export_timestamp"`
	Platform        string    `json:"platform"`
	Experiments     []Record  `json:"experiments"`
}

/*
SerializeAll renders every record as indented UTF-8 JSON. Records were
normalized when appended, so the output holds no complex numbers, typed
arrays or binary blobs.
*/
func (l *Log) SerializeAll() ([]byte, error) {
	doc := Export{
		ExportTimestamp: l.clock().UTC().Truncate(time.Second),
		Platform:        l.platform,
		Experiments:     l.records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize log: %w", err)
	}
	return data, nil
}

// Normalized returns a copy of r with plain JSON-ready parameters and results.
func (r Record) Normalized() (Record, error) {
	params, err := Normalize(r.Parameters)
	if err != nil {
		return Record{}, err
	}
	results, err := Normalize(r.Results)
	if err != nil {
		return Record{}, err
	}

	r.Parameters = params.(map[string]any)
	r.Results = results.(map[string]any)
	return r, nil
}

func normalizeValues(v Values) (Values, error) {
	out, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// ParseExport decodes a document produced by SerializeAll.
func ParseExport(data []byte) (Export, error) {
	var doc Export
	if err := json.Unmarshal(data, &doc); err != nil {
		return Export{}, fmt.Errorf("parse export: %w", err)
	}

	for i, r := range doc.Experiments {
		if r.ID == "" {
			return Export{}, newError("parse export", ErrDomain, "experiment %d has no id", i)
		}
		if !r.Module.Valid() {
			return Export{}, newError("parse export", ErrDomain, "experiment %s has unknown module %q", r.ID, r.Module)
		}
	}
	return doc, nil
}

/*
Restore rebuilds a log holding copies of the exported records under the
exported platform name, ready for appends.
*/
func (e Export) Restore(clock func() time.Time, entropy io.Reader) *Log {
	l := NewLog(e.Platform, clock, entropy)
	for _, r := range e.Experiments {
		l.records = append(l.records, r.clone())
	}
	return l
}
