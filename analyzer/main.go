package main

import (
	"bikeshare/analyzer/config"
	dataErrors "bikeshare/domain/errors"
	"bikeshare/utils"
	"context"
	"errors"
	"flag"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"os"
)

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	logrus.SetFormatter(customFormatter)
	logrus.SetLevel(level)
	return nil
}

func main() {
	configFilepath := flag.String("config", config.DefaultConfigFilepath, "path of the analyzer config file")
	city := flag.String("city", "", "city to analyze: a name, a comma separated list or all")
	month := flag.String("month", "all", "month to filter by: a name, a comma separated list or all")
	day := flag.String("day", "all", "day of week to filter by: a name, a comma separated list or all")
	flag.Parse()

	analyzerConfig, err := config.LoadConfig(*configFilepath)
	if err != nil {
		log.Fatalf("Error loading analyzer config: %s", err.Error())
	}

	if err := InitLogger(analyzerConfig.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	analyzer, err := NewAnalyzer(analyzerConfig)
	if err != nil {
		log.Fatalf("Error initializing analyzer: %s", err.Error())
	}

	filterSelection, err := analyzer.ParseSelection(*city, *month, *day)
	if err != nil {
		log.Errorf("Error parsing selection: %s", err.Error())
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChannel := utils.GetSignalChannel()
	go func() {
		<-signalChannel
		log.Info("[analyzer] signal received, canceling analysis")
		cancel()
	}()

	err = analyzer.Run(ctx, filterSelection)
	if err != nil {
		var stageErr *dataErrors.StageError
		if errors.As(err, &stageErr) {
			log.Errorf("Analysis failed at stage %s: %s", stageErr.Stage, stageErr.Err.Error())
		} else {
			log.Errorf("Error running analysis: %s", err.Error())
		}
		cancel()
		os.Exit(1)
	}

	log.Debug("[analyzer] Finish main.go")
}
