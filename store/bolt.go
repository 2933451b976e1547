package store

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"nemo/types"

	"go.etcd.io/bbolt"
)

const bucket = "experiments"

type BoltDB struct {
	db *bbolt.DB
}

func NewBoltDB() Store {
	return new(BoltDB)
}

func (this *BoltDB) Init(opts ...Option) error {
	options := NewOptions(opts...)

	u, err := url.Parse(options.Endpoint)
	if err != nil {
		return fmt.Errorf("parsing BoltDB endpoint: %w", err)
	}

	if u.Scheme != "bolt" {
		return fmt.Errorf("invalid scheme '%s' for BoltDB endpoint", u.Scheme)
	}

	this.db, err = bbolt.Open(u.Host+u.Path, 0600, &bbolt.Options{NoFreelistSync: true})
	if err != nil {
		return fmt.Errorf("opening BoltDB file: %w", err)
	}

	return this.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
			return fmt.Errorf("creating experiments bucket: %w", err)
		}

		return nil
	})
}

func (this BoltDB) Close() error {
	return this.db.Close()
}

func (this BoltDB) List() (types.Configs, error) {
	var configs types.Configs

	err := this.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))

		return b.ForEach(func(_, v []byte) error {
			var c types.Config

			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("unmarshaling config JSON: %w", err)
			}

			configs = append(configs, c)

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("getting experiments from store: %w", err)
	}

	return configs, nil
}

func (this BoltDB) Get(c *types.Config) error {
	v, err := this.get(c.Metadata.Name)
	if err != nil {
		return fmt.Errorf("getting experiment: %w", err)
	}

	if err := json.Unmarshal(v, c); err != nil {
		return fmt.Errorf("unmarshaling config JSON: %w", err)
	}

	return nil
}

func (this BoltDB) Create(c *types.Config) error {
	if _, err := this.get(c.Metadata.Name); err == nil {
		return fmt.Errorf("experiment %s already exists", c.Metadata.Name)
	}

	now := time.Now().Format(time.RFC3339)

	c.Metadata.Created = now
	c.Metadata.Updated = now

	return this.put(c)
}

func (this BoltDB) Update(c *types.Config) error {
	if _, err := this.get(c.Metadata.Name); err != nil {
		return fmt.Errorf("experiment does not exist")
	}

	c.Metadata.Updated = time.Now().Format(time.RFC3339)

	return this.put(c)
}

func (this BoltDB) Delete(c *types.Config) error {
	err := this.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		return b.Delete([]byte(c.Metadata.Name))
	})

	if err != nil {
		return fmt.Errorf("deleting experiment %s: %w", c.Metadata.Name, err)
	}

	return nil
}

func (this BoltDB) get(k string) ([]byte, error) {
	var v []byte

	this.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		v = b.Get([]byte(k))
		return nil
	})

	if v == nil {
		return nil, fmt.Errorf("experiment %s does not exist", k)
	}

	return v, nil
}

func (this BoltDB) put(c *types.Config) error {
	v, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config JSON: %w", err)
	}

	err = this.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		return b.Put([]byte(c.Metadata.Name), v)
	})

	if err != nil {
		return fmt.Errorf("writing config JSON to Bolt: %w", err)
	}

	return nil
}
