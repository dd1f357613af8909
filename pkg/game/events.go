package game

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
)

// EventType 事件类型
type EventType int

const (
	EventEnemyKilled      EventType = iota // 敌人被击杀
	EventEnemyEscaped                      // 敌人到达终点
	EventTowerBuilt                        // 建造塔
	EventTowerUpgraded                     // 升级塔
	EventTowerSold                         // 出售塔
	EventWaveStarted                       // 波次开始出怪
	EventWaveCompleted                     // 波次出怪完毕
	EventBossPhaseChanged                  // Boss 阶段变化
	EventStateChanged                      // 生命、金钱、分数等发生变化
	EventGameOver                          // 生命耗尽
)

var eventTypeNames = map[EventType]string{
	EventEnemyKilled:      "EnemyKilled",
	EventEnemyEscaped:     "EnemyEscaped",
	EventTowerBuilt:       "TowerBuilt",
	EventTowerUpgraded:    "TowerUpgraded",
	EventTowerSold:        "TowerSold",
	EventWaveStarted:      "WaveStarted",
	EventWaveCompleted:    "WaveCompleted",
	EventBossPhaseChanged: "BossPhaseChanged",
	EventStateChanged:     "StateChanged",
	EventGameOver:         "GameOver",
}

// String 返回事件类型名称
func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event 模拟循环发出的事件
// 只有与事件类型相关的字段会被填写
type Event struct {
	Type   EventType
	RunID  string
	Wave   int
	Entity ecs.EntityID

	EnemyKind   types.EnemyKind
	TowerType   types.TowerType
	UpgradeType types.UpgradeType

	Phase  int // Boss 新阶段
	Amount int // 奖励、返还金额等
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 将普通函数适配为 Listener
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Subscription 订阅句柄，用于取消订阅
type Subscription uint64

type subscriber struct {
	id       Subscription
	listener Listener
}

// EventBus 同步事件总线
//
// Publish 在调用方的 goroutine 中按订阅顺序依次通知。
// 模拟是单线程的，因此不加锁。
type EventBus struct {
	listeners map[EventType][]subscriber
	nextID    Subscription
}

// NewEventBus 创建事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]subscriber),
	}
}

// Subscribe 订阅指定类型的事件
func (b *EventBus) Subscribe(eventType EventType, listener Listener) Subscription {
	b.nextID++
	b.listeners[eventType] = append(b.listeners[eventType], subscriber{id: b.nextID, listener: listener})
	return b.nextID
}

// Unsubscribe 取消订阅，句柄不存在时返回 false
func (b *EventBus) Unsubscribe(sub Subscription) bool {
	for eventType, subs := range b.listeners {
		for i, s := range subs {
			if s.id != sub {
				continue
			}
			// 复制一份，避免正在进行的 Publish 看到被移动的切片
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.listeners[eventType] = next
			return true
		}
	}
	return false
}

// Publish 通知所有订阅了该类型的订阅者
// nil 总线上调用是安全的
func (b *EventBus) Publish(event Event) {
	if b == nil {
		return
	}
	for _, s := range b.listeners[event.Type] {
		s.listener.OnEvent(event)
	}
}

// ListenerCount 指定类型的订阅者数量
func (b *EventBus) ListenerCount(eventType EventType) int {
	return len(b.listeners[eventType])
}
