/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/storage/log"
	"github.com/nuts-foundation/go-stoabs"
	"github.com/nuts-foundation/go-stoabs/bbolt"
	bboltLib "go.etcd.io/bbolt"
)

const fileMode = 0640
const bboltDbExtension = ".db"

type bboltDatabase struct {
	datadir         string
	config          BBoltConfig
	ctx             context.Context
	cancel          context.CancelFunc
	shutdownWatcher *sync.WaitGroup
}

func createBBoltDatabase(datadir string, config BBoltConfig) (*bboltDatabase, error) {
	result := bboltDatabase{
		datadir:         datadir,
		config:          config,
		shutdownWatcher: &sync.WaitGroup{},
	}
	result.ctx, result.cancel = context.WithCancel(context.Background())
	return &result, nil
}

func (b bboltDatabase) createStore(moduleName string, storeName string) (stoabs.KVStore, error) {
	fullStoreName := path.Join(moduleName, storeName)
	log.Logger().
		WithField(core.LogFieldStore, fullStoreName).
		Debug("Creating BBolt store")
	databasePath := path.Join(b.datadir, fullStoreName) + bboltDbExtension
	store, err := bbolt.CreateBBoltStore(databasePath, stoabs.WithLockAcquireTimeout(lockAcquireTimeout))
	if store != nil {
		b.startBackup(fullStoreName, store)
	}
	return store, err
}

func (b bboltDatabase) getClass() Class {
	return VolatileStorageClass
}

func (b bboltDatabase) startBackup(fullStoreName string, store stoabs.KVStore) {
	if !b.config.Backup.Enabled() {
		return
	}
	interval := b.config.Backup.Interval
	log.Logger().
		WithField(core.LogFieldStore, fullStoreName).
		Infof("Wallet database will be backed up every %s", interval)
	ticker := time.NewTicker(interval)

	shutdown := b.ctx.Done()
	b.shutdownWatcher.Add(1)
	go func(finished *sync.WaitGroup) {
		defer finished.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := b.performBackup(fullStoreName, store); err != nil {
					log.Logger().
						WithError(err).
						WithField(core.LogFieldStore, fullStoreName).
						Error("Unable to complete BBolt backup")
				}
			case <-shutdown:
				return
			}
		}
	}(b.shutdownWatcher)
}

// performBackup writes the database to <name>.db.work, moves the existing backup to <name>.db.previous
// and then renames the work file to <name>.db, so a crash never leaves a half written backup behind.
func (b bboltDatabase) performBackup(fullStoreName string, store stoabs.KVStore) error {
	backupFilePath := path.Join(b.config.Backup.Directory, fullStoreName+bboltDbExtension)
	log.Logger().
		WithField(core.LogFieldStore, fullStoreName).
		Debugf("Starting BBolt database backup to: %s", backupFilePath)
	startTime := time.Now()
	wipFilePath := backupFilePath + ".work"
	previousFilePath := backupFilePath + ".previous"

	return store.Read(context.Background(), func(tx stoabs.ReadTx) error {
		if err := os.MkdirAll(path.Dir(backupFilePath), os.ModePerm); err != nil {
			return err
		}
		workFile, err := os.OpenFile(wipFilePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, fileMode)
		if err != nil {
			return err
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(workFile)
		if _, err = tx.Unwrap().(*bboltLib.Tx).WriteTo(workFile); err != nil {
			return err
		}
		if err = workFile.Close(); err != nil {
			return err
		}

		stat, err := os.Stat(backupFilePath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		} else if stat != nil && stat.IsDir() {
			return fmt.Errorf("backup target file is a directory: %s", backupFilePath)
		} else if stat != nil {
			if err = os.Rename(backupFilePath, previousFilePath); err != nil {
				return err
			}
		}
		if err = os.Rename(wipFilePath, backupFilePath); err != nil {
			return err
		}
		log.Logger().
			WithField(core.LogFieldStore, fullStoreName).
			Debugf("BBolt database backup finished in %s", time.Since(startTime))
		return nil
	})
}

func (b bboltDatabase) close() {
	b.cancel()
	b.shutdownWatcher.Wait()
}
