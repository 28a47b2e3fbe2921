package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

type Config struct {
	Http     *HTTPConfig
	StoreAPI *StoreAPICfg
	AuthAPI  *AuthAPICfg
	Session  *SessionCfg
	Redis    *RedisCfg
	Minio    *MinIOCfg
	Kafka    *KafkaCfg
	Camera   *CameraCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreAPICfg — конечная точка каталога товаров.
type StoreAPICfg struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// AuthAPICfg — конечная точка логина и регистрации.
type AuthAPICfg struct {
	BaseURL string
	Timeout time.Duration
}

// SessionCfg — хранение токена сессии.
// Backend: "redis" либо "file". Ключ ровно один.
type SessionCfg struct {
	Backend  string
	TokenKey string
	FilePath string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название бакета для фото proof of delivery
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type KafkaCfg struct {
	Topic       string
	Brokers     []string
	NetworkMode string
	MaxRetries  int
	QueueSize   int
}

// CameraCfg — внешний мост к камере устройства.
// Command — команда, печатающая URI снятого кадра в stdout.
type CameraCfg struct {
	Command string
	Timeout time.Duration
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	storeAPI, err := loadStoreAPICfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	authAPI, err := loadAuthAPICfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:     http,
		StoreAPI: storeAPI,
		AuthAPI:  authAPI,
		Session:  session,
		Redis:    redis,
		Minio:    minio,
		Kafka:    kafka,
		Camera:   loadCameraCfg(),
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadStoreAPICfg(log logger.Logger) (*StoreAPICfg, error) {
	const (
		defaultBaseURL = "https://fakestoreapi.com"
		defaultTimeout = 10 * time.Second
	)

	timeout, err := parseDurationEnv("STORE_API_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid STORE_API_TIMEOUT")
		return nil, err
	}

	maxRetries, err := parseIntEnv("STORE_API_MAX_RETRIES", 3)
	if err != nil {
		return nil, e.Wrap("STORE_API_MAX_RETRIES", err)
	}

	return &StoreAPICfg{
		BaseURL:    strings.TrimRight(getEnvOrDefault("STORE_API_URL", defaultBaseURL), "/"),
		Timeout:    timeout,
		MaxRetries: maxRetries,
	}, nil
}

func loadAuthAPICfg(log logger.Logger) (*AuthAPICfg, error) {
	const (
		defaultBaseURL = "https://dummyjson.com"
		defaultTimeout = 10 * time.Second
	)

	timeout, err := parseDurationEnv("AUTH_API_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid AUTH_API_TIMEOUT")
		return nil, err
	}

	return &AuthAPICfg{
		BaseURL: strings.TrimRight(getEnvOrDefault("AUTH_API_URL", defaultBaseURL), "/"),
		Timeout: timeout,
	}, nil
}

func loadSessionCfg() (*SessionCfg, error) {
	const (
		defaultBackend  = "file"
		defaultTokenKey = "token"
		defaultFilePath = ".storefront/session"
	)

	backend := getEnvOrDefault("TOKEN_STORE", defaultBackend)
	if backend != "file" && backend != "redis" {
		return nil, e.Wrap(backend, e.ErrUnknownTokenStore)
	}

	return &SessionCfg{
		Backend:  backend,
		TokenKey: getEnvOrDefault("TOKEN_KEY", defaultTokenKey),
		FilePath: getEnvOrDefault("TOKEN_FILE", defaultFilePath),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("REDIS_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("REDIS_MAX_RETRIES", err)
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
		defaultBucket   = "proof-of-delivery"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultNetworkMode = "tcp"
		defaultMaxRetries  = 3
		defaultQueueSize   = 64
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	maxRetries, err := parseIntEnv("KAFKA_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("KAFKA_MAX_RETRIES", err)
	}

	queueSize, err := parseIntEnv("SUBMISSION_QUEUE_SIZE", defaultQueueSize)
	if err != nil {
		return nil, e.Wrap("SUBMISSION_QUEUE_SIZE", err)
	}

	return &KafkaCfg{
		Brokers:     brokers,
		Topic:       topic,
		NetworkMode: getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		MaxRetries:  maxRetries,
		QueueSize:   queueSize,
	}, nil
}

func loadCameraCfg() *CameraCfg {
	const defaultTimeout = 30 * time.Second

	timeout, err := parseDurationEnv("CAMERA_TIMEOUT", defaultTimeout)
	if err != nil {
		timeout = defaultTimeout
	}

	return &CameraCfg{
		Command: getEnv("CAMERA_CMD"),
		Timeout: timeout,
	}
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
