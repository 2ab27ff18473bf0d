// Package cli wires the configuration, model client, Spider store and agent
// into cobra commands.
package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"SpiderSQLAgent/app/agent"
	"SpiderSQLAgent/app/configs"
	"SpiderSQLAgent/app/models"
	"SpiderSQLAgent/app/storage"
)

var configPath string

// App bundles the long-lived pieces every command needs.
type App struct {
	Config *configs.Config
	Store  *storage.SpiderStore
	Agent  *agent.ReactAgent
}

func newApp() (*App, error) {
	cfg, err := configs.Load(configPath)
	if err != nil {
		return nil, err
	}

	store := storage.NewSpiderStore(cfg.SpiderPath, cfg.QueryTimeout.Std())

	model := models.NewLLMClient(models.ClientConfig{
		BaseURL:     cfg.Endpoint,
		APIKey:      cfg.APIKey,
		APIVersion:  cfg.APIVersion,
		Deployment:  cfg.Deployment,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   cfg.MaxTokens,
	})

	reactAgent := agent.New(model, store, agent.Config{
		MaxIterations: cfg.MaxIterations,
		GuardEnforce:  cfg.GuardEnforce,
		ModelTimeout:  cfg.ModelTimeout.Std(),
	})

	return &App{Config: cfg, Store: store, Agent: reactAgent}, nil
}

// newModelApp builds the app and validates the model settings. Commands that
// only touch local databases skip the validation.
func newModelApp() (*App, error) {
	app, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := app.Config.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "spidersql",
		Short: "Natural-language questions over Spider SQLite databases",
		Long: "spidersql runs a ReAct loop against an OpenAI-compatible chat model,\n" +
			"letting it answer questions by issuing SQL against Spider benchmark databases.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to YAML config file")

	root.AddCommand(
		newAskCommand(),
		newExploreCommand(),
		newCompareCommand(),
		newTestCommand(),
		newShellCommand(),
	)
	return root
}

// Execute runs the CLI; it is the only thing main calls.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}
