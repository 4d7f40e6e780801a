package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

// FallbackSize 兜底时返回的种子记录数
const FallbackSize = 5

//go:embed seed.yaml
var seedYAML []byte

var (
	once   sync.Once
	points []model.PainPoint
	err    error
)

// Parse 解析 YAML 格式的种子数据
func Parse(data []byte) ([]model.PainPoint, error) {
	var out []model.PainPoint
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse seed dataset: %w", err)
	}
	return out, nil
}

// All 返回全部内置种子记录的副本
func All() ([]model.PainPoint, error) {
	once.Do(func() {
		points, err = Parse(seedYAML)
	})
	if err != nil {
		return nil, err
	}
	return model.ClonePoints(points), nil
}

// First 按原顺序返回前 n 条种子记录，不做任何行业过滤
func First(n int) ([]model.PainPoint, error) {
	all, err := All()
	if err != nil {
		return nil, err
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n], nil
}
