package model

import "time"

// LocationMessage 一条入站位置上报
type LocationMessage struct {
	SenderID   string
	SenderName string
	Latitude   float64
	Longitude  float64
	Address    string
	PlaceName  string
	MapURL     string
	ReceivedAt time.Time
}

// IsLive 判断是否为实时位置：address、name、url 全部为空才算实时。
// 这是上游渠道能提供的最强信号，已知偏弱：任何一个字段出现都按
// 保存点处理（宁可拒绝）。
// TODO: Meta 若在 location 消息上暴露 accuracy / 采集时间字段，在这里收紧判断
func (m LocationMessage) IsLive() bool {
	return m.Address == "" && m.PlaceName == "" && m.MapURL == ""
}

// HasCoordinates 坐标缺失的消息无法参与考勤校验
func (m LocationMessage) HasCoordinates() bool {
	return m.Latitude != 0 || m.Longitude != 0
}

// NewLocationMessage 从 webhook 消息构造位置上报，msg.Location 不能为 nil
func NewLocationMessage(msg InboundMessage, senderName string, receivedAt time.Time) LocationMessage {
	loc := msg.Location
	return LocationMessage{
		SenderID:   msg.From,
		SenderName: senderName,
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		Address:    loc.Address,
		PlaceName:  loc.Name,
		MapURL:     loc.URL,
		ReceivedAt: receivedAt,
	}
}
