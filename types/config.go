package types

import (
	"text2phenotype.com/hmt/logger"
	"text2phenotype.com/hmt/utils"
	"errors"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"
)

const (
	// pipeline type
	HMMTaggerPipeline = "hmm_tagger"

	// features
	EvaluationFeature  = "evaluation"
	ResultCacheFeature = "result_cache"
)

type RequestParams struct {
	TagStyle string `yaml:"tag_style" json:"tag_style"`
}

func (rParams RequestParams) GetHashCode() uint64 {
	return utils.HashString(strings.ToLower(rParams.TagStyle))
}

type TaggerConfig struct {
	CorpusFile     string  `yaml:"corpus_file" json:"corpus_file"`
	VocabFile      string  `yaml:"vocab_file" json:"vocab_file"`
	TestCorpusFile string  `yaml:"test_corpus_file" json:"test_corpus_file"`
	ModelFile      string  `yaml:"model_file" json:"model_file"`
	Alpha          float64 `yaml:"alpha" json:"alpha"`
}

type ParamsConfig struct {
	HMT TaggerConfig `yaml:"HMT" json:"hmt"`
}

type Configuration struct {
	Name          string        `json:"name"`
	FilePath      string        `json:"file_path"`
	RequestParams RequestParams `yaml:"request_params" json:"request_params"`
	Params        ParamsConfig  `yaml:"params" json:"params"`
	Pipeline      string        `yaml:"pipeline" json:"pipeline"`
	Features      []string      `yaml:"features" json:"features"`
}

func (cfg Configuration) CheckFeature(featureName string) bool {
	for _, feat := range cfg.Features {
		if feat == featureName {
			return true
		}
	}

	return false
}

func LoadConfigurations(dirPath string) ([]Configuration, error) {
	hmtLogger := logger.NewLogger("LoadConfigurations")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			cfg := Configuration{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(cfg.FilePath)
			if err != nil {
				hmtLogger.Err(err)
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				hmtLogger.Err(err)
				return
			}

			// check pipeline type
			if cfg.Pipeline != HMMTaggerPipeline {
				hmtLogger.Err(errors.New("wrong pipeline type"))
				return
			}

			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	return configs, nil
}
