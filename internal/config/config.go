package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Provider  Provider  `mapstructure:",squash"`
	Analytics Analytics `mapstructure:",squash"`
	SalesSync SalesSync `mapstructure:",squash"`
	SecretKey string    `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Provider configura o acesso ao provedor externo de dados de vendas.
// Quando SyntheticFallback está habilitado, a indisponibilidade do provedor
// não é um erro: os dados passam a ser gerados sinteticamente.
type Provider struct {
	URL                 string   `mapstructure:"provider_url"`
	AccessToken         string   `mapstructure:"provider_access_token"`
	TimeoutSeconds      int      `mapstructure:"provider_timeout_seconds"`
	SyntheticFallback   bool     `mapstructure:"provider_synthetic_fallback"`
	SyntheticCategories []string `mapstructure:"provider_synthetic_categories"`
}

type Analytics struct {
	MinSharePercent float64 `mapstructure:"analytics_min_share_percent"`
}

type SalesSync struct {
	CronSchedule        string `mapstructure:"sales_sync_cron"`
	LookbackYears       int    `mapstructure:"sales_sync_lookback_years"`
	RequestDelaySeconds int    `mapstructure:"sales_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"sales_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/salesanalytics")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("PROVIDER_URL", "http://localhost:5000/api")
	viper.SetDefault("PROVIDER_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PROVIDER_SYNTHETIC_FALLBACK", true)
	viper.SetDefault("PROVIDER_SYNTHETIC_CATEGORIES", "Eletrônicos,Vestuário,Alimentos,Móveis,Esportes")

	// Piso de exibição da participação de mercado. Entradas abaixo desse percentual
	// saem do subconjunto de exibição, mas continuam contando no denominador.
	viper.SetDefault("ANALYTICS_MIN_SHARE_PERCENT", 4.0)

	// Defaults para sincronização de registros de vendas
	viper.SetDefault("SALES_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("SALES_SYNC_LOOKBACK_YEARS", 3)        // 3 anos de histórico
	viper.SetDefault("SALES_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("SALES_SYNC_ENABLED", false)           // Habilitar sincronização de vendas

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
