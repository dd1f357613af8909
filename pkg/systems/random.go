package systems

// RandomSource 随机数来源
// *rand.Rand 满足该接口；测试中用固定序列替换
type RandomSource interface {
	Float64() float64
}
