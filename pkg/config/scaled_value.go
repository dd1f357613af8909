package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ScaledValue 随波次缩放的数值
//
//	value = base + perWave * steps
//	steps = wave - waveOffset                    (waveDivisor == 0)
//	steps = floor((wave - waveOffset) / divisor) (waveDivisor > 0)
//
// 结果再按 min/max 截断。YAML 中可以直接写一个数字，表示不随波次变化。
type ScaledValue struct {
	Base        float64  `yaml:"base"`
	PerWave     float64  `yaml:"perWave"`
	WaveDivisor int      `yaml:"waveDivisor"`
	WaveOffset  int      `yaml:"waveOffset"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
}

// Constant 返回不随波次变化的数值
func Constant(v float64) ScaledValue {
	return ScaledValue{Base: v}
}

// UnmarshalYAML 支持标量简写
func (s *ScaledValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: invalid scaled value: %w", value.Line, err)
		}
		*s = ScaledValue{Base: v}
		return nil
	}

	type plain ScaledValue
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = ScaledValue(p)
	return nil
}

// At 计算第 wave 波的数值
func (s ScaledValue) At(wave int) float64 {
	steps := float64(wave - s.WaveOffset)
	if s.WaveDivisor > 0 {
		steps = math.Floor(steps / float64(s.WaveDivisor))
	}
	v := s.Base + s.PerWave*steps
	if s.Min != nil && v < *s.Min {
		v = *s.Min
	}
	if s.Max != nil && v > *s.Max {
		v = *s.Max
	}
	return v
}

// IntAt 计算第 wave 波的数值并向下取整
func (s ScaledValue) IntAt(wave int) int {
	// 容忍 0.1*10 这类浮点误差
	return int(math.Floor(s.At(wave) + 1e-9))
}

// IsZero 是否未配置
func (s ScaledValue) IsZero() bool {
	return s.Base == 0 && s.PerWave == 0 && s.Min == nil && s.Max == nil
}

func (s ScaledValue) validate(field string) error {
	if s.WaveDivisor < 0 {
		return fmt.Errorf("%s: waveDivisor cannot be negative, got %d", field, s.WaveDivisor)
	}
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return fmt.Errorf("%s: min (%v) greater than max (%v)", field, *s.Min, *s.Max)
	}
	return nil
}
