package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// 模块按需实现其中一个或多个接口
type PublicModule interface{ MountPublic(*gin.RouterGroup) } // 无需登录
type APIModule interface{ MountAPI(*gin.RouterGroup) }      // 鉴权分组
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }  // 管理端

// 可选：实现该接口可控制挂载顺序（数值越小越先挂），默认 100
type prioritizer interface{ Priority() int }

var (
	mu         sync.RWMutex
	publicMods []PublicModule
	apiMods    []APIModule
	adminMods  []AdminModule
)

// Register 统一注册入口：按类型断言分发
func Register(mod any) {
	mu.Lock()
	defer mu.Unlock()
	if m, ok := mod.(PublicModule); ok {
		publicMods = append(publicMods, m)
	}
	if m, ok := mod.(APIModule); ok {
		apiMods = append(apiMods, m)
	}
	if m, ok := mod.(AdminModule); ok {
		adminMods = append(adminMods, m)
	}
}

func MountAllPublic(g *gin.RouterGroup) {
	mu.RLock()
	mods := append([]PublicModule(nil), publicMods...)
	mu.RUnlock()
	sortByPriority(mods)
	for _, m := range mods {
		m.MountPublic(g)
	}
}

func MountAllAPI(g *gin.RouterGroup) {
	mu.RLock()
	mods := append([]APIModule(nil), apiMods...)
	mu.RUnlock()
	sortByPriority(mods)
	for _, m := range mods {
		m.MountAPI(g)
	}
}

func MountAllAdmin(g *gin.RouterGroup) {
	mu.RLock()
	mods := append([]AdminModule(nil), adminMods...)
	mu.RUnlock()
	sortByPriority(mods)
	for _, m := range mods {
		m.MountAdmin(g)
	}
}

func sortByPriority[T any](mods []T) {
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
