// Package geo 提供大圆距离计算。
package geo

import "math"

// EarthRadiusKm 是 haversine 公式使用的固定地球半径（公里）。
const EarthRadiusKm = 6371.0

// HaversineKm 计算两个 WGS84 坐标点的大圆距离（公里）。
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlng := radians(lng2 - lng1)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
