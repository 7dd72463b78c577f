package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlag lets an explicitly set flag override config and environment.
func bindFlag(v *viper.Viper, f *pflag.Flag, key string) {
	if f == nil {
		return
	}
	_ = v.BindPFlag(key, f)
}
