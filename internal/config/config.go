package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig configures the OpenAI-compatible backend used for
// embeddings, translation and fallback generation.
type OpenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	EmbedModel  string `yaml:"embed_model"`
	ChatModel   string `yaml:"chat_model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EncoderConfig selects the sentence encoder implementation.
type EncoderConfig struct {
	Type      string `yaml:"type"`       // "tfidf" or "openai"
	CachePath string `yaml:"cache_path"` // bbolt embedding cache; empty disables
}

// TranslatorConfig configures language detection and pivot translation.
type TranslatorConfig struct {
	PivotLang   string `yaml:"pivot_lang"`
	Enabled     bool   `yaml:"enabled"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// GeneratorConfig configures the low-confidence fallback generator.
type GeneratorConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// DataConfig points at the static knowledge sources.
type DataConfig struct {
	FAQPath       string `yaml:"faq_path"`
	CorpusPath    string `yaml:"corpus_path"`
	MinChunkChars int    `yaml:"min_chunk_chars"`
}

// RetrievalConfig holds ranking and fallback thresholds.
type RetrievalConfig struct {
	TopK              int     `yaml:"top_k"`
	FAQThreshold      float64 `yaml:"faq_threshold"`
	CorpusThreshold   float64 `yaml:"corpus_threshold"`
	FallbackThreshold float64 `yaml:"fallback_threshold"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"` // "memory" or "qdrant"
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Encoder     EncoderConfig     `yaml:"encoder"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Translator  TranslatorConfig  `yaml:"translator"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Data        DataConfig        `yaml:"data"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
}

// Load reads a config from the given path. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the configuration used when no file is present: offline
// TF-IDF encoder, in-memory store, translation and generation disabled.
func Default() *AppConfig {
	cfg := &AppConfig{
		Encoder:     EncoderConfig{Type: "tfidf"},
		Translator:  TranslatorConfig{Enabled: false},
		Generator:   GeneratorConfig{Enabled: false},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Data:        DataConfig{FAQPath: "guvi_faq.json", CorpusPath: "guvi.txt"},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Encoder.Type == "" {
		cfg.Encoder.Type = "tfidf"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.OpenAI.EmbedModel == "" {
		cfg.OpenAI.EmbedModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if cfg.OpenAI.TimeoutSecs == 0 {
		cfg.OpenAI.TimeoutSecs = 30
	}
	if cfg.Translator.PivotLang == "" {
		cfg.Translator.PivotLang = "en"
	}
	if cfg.Translator.TimeoutSecs == 0 {
		cfg.Translator.TimeoutSecs = 20
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = 0.75
	}
	if cfg.Generator.MaxTokens == 0 {
		cfg.Generator.MaxTokens = 150
	}
	if cfg.Data.MinChunkChars == 0 {
		cfg.Data.MinChunkChars = 40
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.FAQThreshold == 0 {
		cfg.Retrieval.FAQThreshold = 0.45
	}
	if cfg.Retrieval.CorpusThreshold == 0 {
		cfg.Retrieval.CorpusThreshold = 0.40
	}
	if cfg.Retrieval.FallbackThreshold == 0 {
		cfg.Retrieval.FallbackThreshold = 0.5
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Type == "qdrant" && cfg.VectorStore.Qdrant != nil {
		if cfg.VectorStore.Qdrant.Collection == "" {
			cfg.VectorStore.Qdrant.Collection = "polybot"
		}
		if cfg.VectorStore.Qdrant.TimeoutSecs == 0 {
			cfg.VectorStore.Qdrant.TimeoutSecs = 15
		}
	}
}
