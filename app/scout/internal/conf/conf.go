package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Auth   *Auth
	Scout  *Scout
}

type Auth struct {
	JwtKey string `json:"jwt_key"`
}

type Server struct {
	Http *HTTP
	Grpc *GRPC
}

type HTTP struct {
	Addr    string
	Timeout string
}

type GRPC struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

type Scout struct {
	Remote     *Remote     `json:"remote"`
	Generative *Generative `json:"generative"`
	Favorites  *Favorites  `json:"favorites"`
	Log        *Log        `json:"log"`
	PacingMs   int32       `json:"pacing_ms"`
	// ScanOnStart 启动时触发一次扫描
	ScanOnStart bool `json:"scan_on_start"`
}

type Remote struct {
	Provider string    `json:"provider"`
	Db       *DB       `json:"db"`
	Supabase *Supabase `json:"supabase"`
}

type DB struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Sslmode  string `json:"sslmode"`
}

type Supabase struct {
	Url string `json:"url"`
	Key string `json:"key"`
}

type Generative struct {
	Provider string `json:"provider"`
	BaseUrl  string `json:"base_url"`
	ApiKey   string `json:"api_key"`
	Model    string `json:"model"`
}

type Favorites struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
