package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bonitasoft/bonita-engine-sub039/agent"
	"github.com/bonitasoft/bonita-engine-sub039/analytics"
	"github.com/bonitasoft/bonita-engine-sub039/config"
	"github.com/bonitasoft/bonita-engine-sub039/container"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/service"
	"github.com/bonitasoft/bonita-engine-sub039/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("config-file", "", "Path to config file.")
	cmd.PersistentFlags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.PersistentFlags().String("redis-password", "", "redis password")
	cmd.PersistentFlags().Int("redis-pool-size", 10, "redis connection pool size")
	cmd.PersistentFlags().String("namespace", "bonita", "namespace used in storage")
	cmd.PersistentFlags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.PersistentFlags().String("storage-impl", "memory", "implementation of underline storage (memory, redis)")
	cmd.PersistentFlags().String("encoder-decoder", "JSON", "encoder decoder used to read definition files")
	cmd.PersistentFlags().Duration("transient-data-ttl", 0, "time a transient data instance is kept, 0 keeps it forever")
	cmd.PersistentFlags().String("analytics-file", "", "file receiving instantiation analytics, disabled when empty")
	cmd.PersistentFlags().String("log-level", "info", "log level")
	return viper.BindPFlags(cmd.PersistentFlags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Password = viper.GetString("redis-password")
	c.cfg.RedisConfig.PoolSize = viper.GetInt("redis-pool-size")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.EncoderDecoderType = config.EncoderDecoderType(viper.GetString("encoder-decoder"))
	c.cfg.TransientDataTTL = viper.GetDuration("transient-data-ttl")
	c.cfg.LogLevel = viper.GetString("log-level")
	c.cfg.AnalyticsConfig = analytics.DataCollectorConfig{CollectorType: analytics.NOOP_DATA_COLLECTOR}
	if fileName := viper.GetString("analytics-file"); fileName != "" {
		c.cfg.AnalyticsConfig = analytics.DataCollectorConfig{CollectorType: analytics.LOG_FILE_DATA_COLLECTOR, FileName: fileName}
	}
	return nil
}

func (c *cli) serve(cmd *cobra.Command, args []string) error {
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		return err
	}
	if err = agent.Start(); err != nil {
		return err
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

// instantiate deploys a definition file and starts one instance of it, printing the result.
func (c *cli) instantiate(cmd *cobra.Command, args []string) error {
	definitionFile, err := cmd.Flags().GetString("definition")
	if err != nil {
		return err
	}
	inputs, err := cmd.Flags().GetStringToString("input")
	if err != nil {
		return err
	}
	def, err := readDefinition(definitionFile, string(c.cfg.EncoderDecoderType))
	if err != nil {
		return err
	}

	d := container.NewDiContainer()
	if err := d.Init(c.cfg.Config); err != nil {
		return err
	}
	defer d.Close()

	ctx := context.Background()
	if _, err := d.GetMetadataService().DeployProcess(ctx, def); err != nil {
		return err
	}
	req := service.StartRequest{ProcessDefinitionId: def.Id, Inputs: make(map[string]any, len(inputs))}
	for name, value := range inputs {
		req.Inputs[name] = value
	}
	result, err := d.GetInstantiationService().StartProcess(ctx, req)
	if err != nil {
		return err
	}
	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")
	return out.Encode(result)
}

// readDefinition decodes a definition file, picking the codec from the extension
// and falling back to the configured one.
func readDefinition(fileName string, encoding string) (*model.ProcessDefinition, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		encoding = util.ENCODING_YAML
	case ".json":
		encoding = util.ENCODING_JSON
	}
	encDec, err := util.NewEncoderDecoder[model.ProcessDefinition](encoding)
	if err != nil {
		return nil, err
	}
	def, err := encDec.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("unable to read definition %s: %w", fileName, err)
	}
	return def, nil
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:               "flownode",
		PersistentPreRunE: cli.setupConfig,
		RunE:              cli.serve,
	}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the instantiation api over http",
		RunE:  cli.serve,
	}
	instantiate := &cobra.Command{
		Use:   "instantiate",
		Short: "Deploy a process definition file and start one instance of it",
		RunE:  cli.instantiate,
	}
	instantiate.Flags().String("definition", "", "process definition file (json or yaml)")
	instantiate.Flags().StringToString("input", nil, "instantiation input, name=value")
	_ = instantiate.MarkFlagRequired("definition")
	cmd.AddCommand(serve, instantiate)

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
