// Package timeslot は固定幅の時間窓を前後に送るタイムスロット操作を提供する。
package timeslot

import (
	"time"

	"github.com/hitoshi/gameplan/internal/model"
)

// Advance は時間窓の両端を同じ量だけずらした新しいフィルタを返す。
// 窓の幅は変わらない。元のフィルタは変更しない。
// データセットの営業時間外への移動も許容し、境界への丸め込みは行わない。
// 範囲外の窓はそのまま空の検索結果になる。
func Advance(f model.Filter, delta time.Duration) model.Filter {
	f.StartDateTime = f.StartDateTime.Add(delta)
	f.EndDateTime = f.EndDateTime.Add(delta)
	return f
}

// InitialWindow は指定曜日の最早開始時刻を起点とする固定幅の窓を持つ
// タイムスロットモードのフィルタを返す。曜日の時刻情報がなければfalseを返す。
func InitialWindow(props model.FilterProperties, day time.Weekday, width time.Duration) (model.Filter, bool) {
	start, ok := props.StartTimes[day]
	if !ok {
		return model.Filter{}, false
	}
	f := model.DefaultFilter()
	f.SelectedDay = int(day)
	f.StartDateTime = start
	f.EndDateTime = start.Add(width)
	f.InTimeSlotMode = true
	return f, true
}
