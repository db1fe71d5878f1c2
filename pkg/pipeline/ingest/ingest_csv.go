/*
 * Copyright (C) 2023 KrishJani
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
	"github.com/KrishJani/drive-health-pipeline/pkg/operational"
)

var csvLog = logrus.WithField("component", "ingest.CSV")

const defaultFilePattern = "*.csv"

// smartColumns maps the raw Backblaze column names to the friendly record
// field names. Columns outside this map are dropped at ingest time.
var smartColumns = map[string]string{
	"serial_number": detect.FieldSerialNumber,
	"failure":       detect.FieldFailure,
	"smart_5_raw":   detect.FieldReallocatedSectors,
	"smart_9_raw":   detect.FieldPowerOnHours,
	"smart_187_raw": detect.FieldUncorrectableErrors,
	"smart_194_raw": detect.FieldTemperature,
	"smart_197_raw": detect.FieldPendingSectors,
	"smart_198_raw": detect.FieldOfflineUncorrectable,
}

var (
	csvFilesRead = operational.DefineMetric(
		"ingest_csv_files_read",
		"Number of telemetry CSV files read",
		operational.TypeCounter,
	)
	csvRecordsIngested = operational.DefineMetric(
		"ingest_csv_records",
		"Number of drive records ingested from CSV files",
		operational.TypeCounter,
	)
	csvErrors = operational.DefineMetric(
		"ingest_csv_errors",
		"Counter of errors reading telemetry CSV files",
		operational.TypeCounter,
		"type",
	)
)

type ingestCSV struct {
	directory     string
	pattern       string
	recordsRead   prometheus.Counter
	filesRead     prometheus.Counter
	errorsCounter *prometheus.CounterVec
}

// Ingest reads every matching CSV file under the configured directory and
// emits one entry per data row. Files that cannot be read are skipped with a
// warning, mirroring how daily telemetry dumps occasionally carry a corrupt
// file. Missing counters are normalized to zero.
func (c *ingestCSV) Ingest() ([]config.GenericMap, error) {
	files, err := filepath.Glob(filepath.Join(c.directory, c.pattern))
	if err != nil {
		return nil, errors.Wrap(err, "listing telemetry files")
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no %s files found in directory %s", c.pattern, c.directory)
	}
	csvLog.Infof("found %d CSV files to combine", len(files))

	entries := make([]config.GenericMap, 0)
	for _, file := range files {
		fileEntries, err := c.readFile(file)
		if err != nil {
			csvLog.Warnf("could not read or process file %s: %v", file, err)
			c.errorsCounter.WithLabelValues("FileReadError").Inc()
			continue
		}
		c.filesRead.Inc()
		entries = append(entries, fileEntries...)
	}
	if len(entries) == 0 {
		return nil, errors.Errorf("no drive records could be loaded from %s", c.directory)
	}
	c.recordsRead.Add(float64(len(entries)))
	csvLog.Infof("data combination complete, %d total drive records", len(entries))
	return entries, nil
}

func (c *ingestCSV) readFile(fileName string) ([]config.GenericMap, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	// map the wanted columns to their positions; absent columns stay at zero
	columns := make(map[int]string)
	for i, name := range header {
		if friendly, ok := smartColumns[name]; ok {
			columns[i] = friendly
		}
	}

	var entries []config.GenericMap
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.errorsCounter.WithLabelValues("RowParseError").Inc()
			csvLog.Debugf("skipping malformed row in %s: %v", fileName, err)
			continue
		}
		entry := config.GenericMap{}
		for _, friendly := range smartColumns {
			if friendly != detect.FieldSerialNumber {
				entry[friendly] = float64(0)
			}
		}
		entry[detect.FieldSerialNumber] = ""
		for i, friendly := range columns {
			if i >= len(row) {
				continue
			}
			if friendly == detect.FieldSerialNumber {
				entry[friendly] = row[i]
				continue
			}
			value, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				// empty and unparseable cells count as zero
				value = 0
			}
			entry[friendly] = value
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// NewIngestCSV creates an ingester reading drive telemetry CSV dumps.
func NewIngestCSV(params config.StageParam, opMetrics *operational.Metrics) (Ingester, error) {
	csvConfig := api.IngestCSV{}
	if params.Ingest != nil && params.Ingest.CSV != nil {
		csvConfig = *params.Ingest.CSV
	}
	if csvConfig.Directory == "" {
		return nil, errors.New("ingest directory not specified")
	}
	pattern := csvConfig.FilePattern
	if pattern == "" {
		pattern = defaultFilePattern
	}
	csvLog.Infof("input directory = %s, pattern = %s", csvConfig.Directory, pattern)

	return &ingestCSV{
		directory:     csvConfig.Directory,
		pattern:       pattern,
		recordsRead:   opMetrics.NewCounter(&csvRecordsIngested),
		filesRead:     opMetrics.NewCounter(&csvFilesRead),
		errorsCounter: opMetrics.NewCounterVec(&csvErrors),
	}, nil
}
