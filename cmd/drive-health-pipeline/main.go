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

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "net/http/pprof"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/operational"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline"
)

var (
	buildVersion          = "unknown"
	buildDate             = "unknown"
	cfgFile               string
	logLevel              string
	envPrefix             = "DRIVE_HEALTH"
	defaultConfigFileName = ".drive-health-pipeline"
	opts                  config.Options

	// shortcut flags synthesizing the default csv -> features -> anomaly -> stdout pipeline
	dataDir       string
	contamination float64
	trees         int
	sampleSize    int
	seed          int64
	topAnomalies  int
	outputFormat  string
)

// rootCmd represents the root command
var rootCmd = &cobra.Command{
	Use:   "drive-health-pipeline",
	Short: "Score drive SMART telemetry for failure-predicting anomalies",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

// initConfig use config file and ENV variables if set.
func initConfig() {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(defaultConfigFileName)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfgErr := v.ReadInConfig()

	bindFlags(rootCmd, v)

	initLogger()

	if cfgErr != nil {
		log.Debugf("no config file read: %v", cfgErr)
	}
}

func initLogger() {
	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		ll = log.ErrorLevel
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true, PadLevelText: true, DisableQuote: true})
}

func dumpConfig(opts *config.Options) {
	configAsJSON, err := json.MarshalIndent(opts, "", "    ")
	if err != nil {
		panic(fmt.Sprintf("error dumping config: %v", err))
	}
	log.Infof("Using configuration:\n%s", configAsJSON)
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if strings.Contains(f.Name, ".") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, ".", "_"))
			_ = v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix))
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			switch val.(type) {
			case bool, uint, string, int32, int16, int8, int, uint32, uint64, int64, float64, float32, []string, []int:
				_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			default:
				var jsonNew = jsoniter.ConfigCompatibleWithStandardLibrary
				b, err := jsonNew.Marshal(&val)
				if err != nil {
					log.Fatalf("can't parse flag %s into json with value %v got error %s", f.Name, val, err)
					return
				}
				_ = cmd.Flags().Set(f.Name, string(b))
			}
		}
	})
}

func initFlags() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s)", defaultConfigFileName))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warning, error")
	rootCmd.PersistentFlags().StringVar(&opts.PipeLine, "pipeline", "", "json of config file pipeline field")
	rootCmd.PersistentFlags().StringVar(&opts.Parameters, "parameters", "", "json of config file parameters field")
	rootCmd.PersistentFlags().IntVar(&opts.Profile.Port, "profile.port", 0, "Go pprof tool port (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "training_data", "directory holding the telemetry CSV files")
	rootCmd.PersistentFlags().Float64Var(&contamination, "contamination", 0.01, "expected fraction of anomalous records")
	rootCmd.PersistentFlags().IntVar(&trees, "trees", 200, "number of isolation trees")
	rootCmd.PersistentFlags().IntVar(&sampleSize, "sample-size", 0, "per-tree subsample size (0 = auto)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "random seed for reproducible runs")
	rootCmd.PersistentFlags().IntVar(&topAnomalies, "top", 10, "number of most anomalous drives to list")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "output format: text or json")
}

func main() {
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// defaultPipeline synthesizes the csv analysis pipeline from shortcut flags.
func defaultPipeline() config.PipelineBuilderStage {
	builder := config.NewCSVPipeline("ingest", api.IngestCSV{Directory: dataDir})
	features := builder.TransformFeatures("features", api.TransformFeatures{})
	anomaly := features.ExtractAnomaly("anomaly", api.ExtractAnomaly{
		Trees:         trees,
		SampleSize:    sampleSize,
		Contamination: contamination,
		Seed:          seed,
	})
	return anomaly.WriteStdout("write", api.WriteStdout{Format: outputFormat, Top: topAnomalies})
}

func run() {
	fmt.Printf("Starting %s:\n=====\nBuild version: %s\nBuild date: %s\n\n", filepath.Base(os.Args[0]), buildVersion, buildDate)

	if opts.PipeLine == "" {
		builder := defaultPipeline()
		if err := builder.IntoOptions(&opts); err != nil {
			log.Errorf("failed to build default pipeline: %v", err)
			os.Exit(1)
		}
	}
	dumpConfig(&opts)

	cfg, err := config.ParseConfig(&opts)
	if err != nil {
		log.Errorf("error in parsing config file: %v", err)
		os.Exit(1)
	}

	if opts.Profile.Port != 0 {
		go func() {
			log.WithField("port", opts.Profile.Port).Info("starting PProf HTTP listener")
			log.WithError(http.ListenAndServe(fmt.Sprintf(":%d", opts.Profile.Port), nil)).
				Error("PProf HTTP listener stopped working")
		}()
	}

	mainPipeline, err := pipeline.NewPipeline(&cfg, operational.NewMetrics(nil))
	if err != nil {
		log.Errorf("failed to initialize pipeline: %s", err)
		os.Exit(1)
	}

	if err := mainPipeline.Run(); err != nil {
		log.Errorf("pipeline run failed: %s", err)
		os.Exit(1)
	}

	if report := mainPipeline.Report(); report != nil {
		log.Infof("failed-class precision=%.3f recall=%.3f f1=%.3f",
			report.Failed.Precision, report.Failed.Recall, report.Failed.F1)
	}
}
