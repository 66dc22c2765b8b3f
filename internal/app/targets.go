// File: internal/app/targets.go (complete file)

package app

// DefaultTargets are probed, in order, when no URL is given.
var DefaultTargets = []string{
	"https://ds.testipv6.cn",
	"https://www.qq.com",
	"https://api.live.bilibili.com",
	"https://live.bilibili.com",
}
