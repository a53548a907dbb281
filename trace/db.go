package trace

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
)

// cacheSize bounds the number of sample series kept in memory by the
// database read cache.
const cacheSize = 256

// Database keys.
const (
	modelKey  = "model"
	chainsKey = "chains"
)

// DB is a trace database holding the traces of all chains of a fitting run.
type DB struct {
	path  string
	db    *leveldb.DB
	cache *lru.Cache // read cache for sample series
}

// OpenDB opens a trace database, creating it if it does not exist.
func OpenDB(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace database %v; %v", path, err)
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create read cache; %v", err)
	}
	return &DB{path: path, db: db, cache: cache}, nil
}

// Close closes the trace database.
func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("cannot close trace database; %v", err)
	}
	return nil
}

// seriesKey produces the database key of a sample series.
func seriesKey(chain int, name string) []byte {
	return []byte(fmt.Sprintf("samples/%d/%s", chain, name))
}

// namesKey produces the database key of a chain's variable list.
func namesKey(chain int) []byte {
	return []byte(fmt.Sprintf("names/%d", chain))
}

// PutTrace stores the trace of a chain.
func (d *DB) PutTrace(chain int, t *Trace) error {
	if err := d.db.Put([]byte(modelKey), []byte(t.model), nil); err != nil {
		return fmt.Errorf("cannot store model name; %v", err)
	}
	names, err := json.Marshal(t.names)
	if err != nil {
		return fmt.Errorf("cannot encode variable list; %v", err)
	}
	if err := d.db.Put(namesKey(chain), names, nil); err != nil {
		return fmt.Errorf("cannot store variable list; %v", err)
	}
	for _, name := range t.names {
		if err := d.db.Put(seriesKey(chain, name), encodeSeries(t.samples[name]), nil); err != nil {
			return fmt.Errorf("cannot store samples of %v; %v", name, err)
		}
	}

	// bump the chain count if necessary
	numChains, err := d.NumChains()
	if err != nil {
		return err
	}
	if chain >= numChains {
		count := make([]byte, 4)
		binary.LittleEndian.PutUint32(count, uint32(chain+1))
		if err := d.db.Put([]byte(chainsKey), count, nil); err != nil {
			return fmt.Errorf("cannot store chain count; %v", err)
		}
	}
	return nil
}

// GetSeries reads the sample series of a variable, preferring the read cache.
func (d *DB) GetSeries(chain int, name string) ([]float64, error) {
	key := seriesKey(chain, name)
	if xs, ok := d.cache.Get(string(key)); ok {
		return xs.([]float64), nil
	}
	raw, err := d.db.Get(key, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot read samples of %v; %v", name, err)
	}
	xs := decodeSeries(raw)
	d.cache.Add(string(key), xs)
	return xs, nil
}

// GetTrace reads the full trace of a chain.
func (d *DB) GetTrace(chain int) (*Trace, error) {
	model, err := d.Model()
	if err != nil {
		return nil, err
	}
	raw, err := d.db.Get(namesKey(chain), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot read variable list of chain %v; %v", chain, err)
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("cannot decode variable list of chain %v; %v", chain, err)
	}
	t := New(model, names)
	for _, name := range names {
		xs, err := d.GetSeries(chain, name)
		if err != nil {
			return nil, err
		}
		t.samples[name] = append([]float64{}, xs...)
	}
	return t, nil
}

// Model returns the name of the fitted model.
func (d *DB) Model() (string, error) {
	raw, err := d.db.Get([]byte(modelKey), nil)
	if err != nil {
		return "", fmt.Errorf("cannot read model name; %v", err)
	}
	return string(raw), nil
}

// NumChains returns the number of stored chains.
func (d *DB) NumChains() (int, error) {
	raw, err := d.db.Get([]byte(chainsKey), nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cannot read chain count; %v", err)
	}
	return int(binary.LittleEndian.Uint32(raw)), nil
}

// Size reports the on-disk size of the trace database.
func (d *DB) Size() (datasize.ByteSize, error) {
	var total uint64
	err := filepath.Walk(d.path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += uint64(info.Size())
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cannot determine size of trace database; %v", err)
	}
	return datasize.ByteSize(total), nil
}

// encodeSeries converts a sample series to its binary representation.
func encodeSeries(xs []float64) []byte {
	raw := make([]byte, 8*len(xs))
	for i, x := range xs {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(x))
	}
	return raw
}

// decodeSeries converts the binary representation back to a sample series.
func decodeSeries(raw []byte) []float64 {
	xs := make([]float64, len(raw)/8)
	for i := range xs {
		xs[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return xs
}
