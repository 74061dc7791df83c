package core

import (
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

// Config burrowland config
type Config struct {
	App        App          `json:"app"`
	DB         db.Config    `json:"db"`
	MainWallet MainWallet   `json:"main_wallet"`
	Oracle     OracleConfig `json:"oracle"`
	Dex        DexConfig    `json:"dex"`
	Risk       RiskConfig   `json:"risk"`
	Margin     MarginConfig `json:"margin"`
}

// App app config
type App struct {
	Genesis  int64  `json:"genesis"`
	Location string `json:"location"`
	Port     int    `json:"port"`
}

// MainWallet transfer wallet config
type MainWallet struct {
	mixin.Keystore
	ClientSecret string `json:"client_secret"`
	Pin          string `json:"pin"`
}

// OracleConfig price oracle config
type OracleConfig struct {
	EndPoint string `json:"end_point"`
}

// DexConfig quote endpoints per registered dex
type DexConfig struct {
	Endpoints map[string]string `json:"endpoints"`
}

// RiskConfig risk validation surface
type RiskConfig struct {
	MaxNumAssets                uint32 `json:"max_num_assets"`
	MaximumRecencyDurationSec   uint32 `json:"maximum_recency_duration_sec"`
	MaximumStalenessDurationSec uint32 `json:"maximum_staleness_duration_sec"`
}
