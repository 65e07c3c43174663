package main

import (
	"text2phenotype.com/hmt/api"
	"text2phenotype.com/hmt/corpus"
	"text2phenotype.com/hmt/hmm"
	"text2phenotype.com/hmt/logger"
	"text2phenotype.com/hmt/pipeline"
	"text2phenotype.com/hmt/s3client"
	"text2phenotype.com/hmt/types"
	"text2phenotype.com/hmt/worker"
	"flag"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"io/ioutil"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"
)

type Config struct {
	ConfigPath        string `envconfig:"HMT_CONFIG_PATH" required:"true"`
	DataPath          string `envconfig:"HMT_DATA_PATH" required:"true"`
	FetchTrainingData bool   `envconfig:"HMT_FETCH_TRAINING_DATA" default:"false"`
	RestAPIActive     bool   `envconfig:"HMT_REST_API_ACTIVE" default:"false"`
	RestAPIPort       string `envconfig:"HMT_REST_API_PORT" default:"10000"`
}

const pipelineStartMaxRetries = 5

func main() {
	logger.SetupLogging()
	hmtLogger := logger.NewLogger("Main")
	fatalErrLogger := hmtLogger.Fatal().Caller()
	evaluate := flag.Bool("evaluate", false, "score the test corpus and exit")
	flag.Parse()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	// score the model against the held-out corpus and exit
	if *evaluate {
		cfgs, err := types.LoadConfigurations(config.ConfigPath)
		if err != nil || len(cfgs) == 0 {
			fatalErrLogger.Err(err).Msg("Failed to load configurations")
			os.Exit(1)
		}
		model, err := prepareModel(config, cfgs[0], &hmtLogger)
		if err != nil {
			fatalErrLogger.Err(err).Msg("Failed to prepare model")
			os.Exit(1)
		}
		if err := evaluateModel(config, cfgs[0], model, &hmtLogger); err != nil {
			fatalErrLogger.Err(err).Msg("Evaluation failed")
			os.Exit(1)
		}
		return
	}

	//Load Pipeline
	type taggingService struct {
		ppln        pipeline.Pipeline
		fingerprint string
	}
	pipelineChannel := make(chan taggingService)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			cfgs, err := types.LoadConfigurations(config.ConfigPath)
			if err != nil {
				hmtLogger.Err(err).Msg("Failed to load configurations. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			if len(cfgs) == 0 {
				hmtLogger.Error().Msg("No tagger configurations found. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			hmtLogger.Info().Msgf("Loaded %d configurations", len(cfgs))
			hmtLogger.Info().Msg("Starting pipeline loading")

			model, err := prepareModel(config, cfgs[0], &hmtLogger)
			if err != nil {
				hmtLogger.Err(err).Msg("Failed to prepare model. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			ppln, err := pipeline.Tagging(pipeline.TaggingParams{Model: model, Config: cfgs[0]})
			if err != nil {
				hmtLogger.Err(err).Msg("Failed to start tagging pipeline. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			hmtLogger.Info().Msg("Pipeline loaded")
			pipelineChannel <- taggingService{
				ppln:        ppln,
				fingerprint: strconv.FormatUint(model.Fingerprint(), 16),
			}
			return
		}
		fatalErrLogger.Msg("Could not start pipeline after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until pipeline loads
	service := <-pipelineChannel

	if config.RestAPIActive {
		go func() {
			hmtLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: service.ppln,
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			hmtLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	hmtLogger.Info().Msg("Start HMT Worker")
	for {
		rmqWorker, err := worker.New(service.ppln, service.fingerprint)
		if err != nil {
			hmtLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			hmtLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

// prepareModel loads a previously saved model when the profile names one
// and the file exists, otherwise trains from the corpus and vocabulary
// files (and saves the result if a model path is configured).
func prepareModel(config Config, cfg types.Configuration, hmtLogger *zerolog.Logger) (*hmm.Model, error) {
	tagCfg := cfg.Params.HMT

	if config.FetchTrainingData {
		if err := fetchTrainingData(config, tagCfg, hmtLogger); err != nil {
			return nil, err
		}
	}

	if tagCfg.ModelFile != "" {
		modelPath := path.Join(config.DataPath, tagCfg.ModelFile)
		if _, err := os.Stat(modelPath); err == nil {
			hmtLogger.Info().Str("model_file", modelPath).Msg("Loading saved model")
			return hmm.LoadModelFromFile(modelPath)
		}
	}

	vocab, err := corpus.LoadVocabulary(path.Join(config.DataPath, tagCfg.VocabFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	lines, err := corpus.ReadCorpus(path.Join(config.DataPath, tagCfg.CorpusFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read training corpus: %w", err)
	}

	alpha := tagCfg.Alpha
	if alpha == 0 {
		alpha = hmm.DefaultAlpha
	}
	hmtLogger.Info().
		Int("corpus_lines", len(lines)).
		Int("vocab_size", vocab.Size()).
		Float64("alpha", alpha).
		Msg("Training model")
	model, err := hmm.Train(lines, vocab, corpus.ReadWordTag, alpha)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}

	if tagCfg.ModelFile != "" {
		modelPath := path.Join(config.DataPath, tagCfg.ModelFile)
		if err := hmm.SaveModelToFile(model, modelPath); err != nil {
			hmtLogger.Err(err).Str("model_file", modelPath).Msg("Failed to save trained model, continuing")
		}
	}
	return model, nil
}

// fetchTrainingData pulls the profile's corpus and vocabulary files from
// the storage bucket into the local data directory before training.
func fetchTrainingData(config Config, tagCfg types.TaggerConfig, hmtLogger *zerolog.Logger) error {
	client, err := s3client.New()
	if err != nil {
		return fmt.Errorf("failed to create S3 client for training data: %w", err)
	}
	defer client.Close()

	files := []string{tagCfg.CorpusFile, tagCfg.VocabFile}
	if tagCfg.TestCorpusFile != "" {
		files = append(files, tagCfg.TestCorpusFile)
	}
	for _, file := range files {
		data, err := client.Download(file)
		if err != nil {
			return fmt.Errorf("failed to fetch %q: %w", file, err)
		}
		if err := ioutil.WriteFile(path.Join(config.DataPath, file), data, 0644); err != nil {
			return err
		}
		hmtLogger.Info().Str("file", file).Msg("Fetched training data file")
	}
	return nil
}

func evaluateModel(config Config, cfg types.Configuration, model *hmm.Model, hmtLogger *zerolog.Logger) error {
	if !cfg.CheckFeature(types.EvaluationFeature) {
		return fmt.Errorf("profile %q does not enable evaluation", cfg.Name)
	}
	tagCfg := cfg.Params.HMT
	if tagCfg.TestCorpusFile == "" {
		return fmt.Errorf("profile %q has no test corpus", cfg.Name)
	}
	lines, err := corpus.ReadCorpus(path.Join(config.DataPath, tagCfg.TestCorpusFile))
	if err != nil {
		return fmt.Errorf("failed to read test corpus: %w", err)
	}
	words, tags, err := corpus.SplitWordsTags(lines, model.Vocab, corpus.ReadWordTag)
	if err != nil {
		return fmt.Errorf("failed to parse test corpus: %w", err)
	}
	accuracy, err := model.Score(words, tags)
	if err != nil {
		return err
	}
	hmtLogger.Info().
		Int("tokens", len(words)).
		Float64("accuracy", accuracy).
		Msg("Evaluation finished")
	return nil
}
