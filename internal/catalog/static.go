package catalog

import (
	"context"

	"plan-advisor/pkg/plan"
)

// StaticSource serves a fixed, in-memory package list.
type StaticSource struct {
	carrier  string
	packages []plan.Product
}

// NewStaticSource creates a source over a fixed package list, stamping the
// carrier onto every package.
func NewStaticSource(carrier string, packages []plan.Product) *StaticSource {
	stamped := make([]plan.Product, len(packages))
	for i, p := range packages {
		p.Carrier = carrier
		stamped[i] = p
	}
	return &StaticSource{carrier: carrier, packages: stamped}
}

func (s *StaticSource) Carrier() string { return s.carrier }

func (s *StaticSource) Packages(_ context.Context) ([]plan.Product, error) {
	return s.packages, nil
}

// NewChinaMobile returns the built-in China Mobile catalog.
func NewChinaMobile() *StaticSource {
	packages := make([]plan.Product, 0)
	packages = append(packages, internetCardPackages()...)
	packages = append(packages, fourGPackages()...)
	packages = append(packages, fiveGPackages()...)
	packages = append(packages, otherPackages()...)
	return NewStaticSource("中国移动", packages)
}

func internetCardPackages() []plan.Product {
	return []plan.Product{
		{
			Name:     "花卡宝藏版19元",
			Specs:    plan.Spec{"data": 30, "calls": 0, "price": 19},
			Features: []string{"定向流量30GB", "亲情号免费"},
			Type:     "互联网卡",
		},
		{
			Name:     "花卡宝藏版20元",
			Specs:    plan.Spec{"data": 10, "calls": 0, "price": 20},
			Features: []string{"通用流量10GB", "亲情号免费"},
			Type:     "互联网卡",
		},
		{
			Name:     "花卡宝藏版29元",
			Specs:    plan.Spec{"data": 35, "calls": 0, "price": 29},
			Features: []string{"通用5GB+定向30GB", "见卡片详情"},
			Type:     "互联网卡",
		},
		{
			Name:     "花卡宝藏版39元",
			Specs:    plan.Spec{"data": 40, "calls": 0, "price": 39},
			Features: []string{"通用10GB+定向30GB", "亲情号免费"},
			Type:     "互联网卡",
		},
	}
}

func fourGPackages() []plan.Product {
	return []plan.Product{
		{
			Name:     "4G自由选8元",
			Specs:    plan.Spec{"data": 0.1, "calls": 0, "price": 8},
			Features: []string{"套内资源100M", "语音0.25元/分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G自由选18元",
			Specs:    plan.Spec{"data": 0.3, "calls": 0, "price": 18},
			Features: []string{"套内资源300M", "语音0.19元/分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G自由选28元",
			Specs:    plan.Spec{"data": 0.9, "calls": 0, "price": 28},
			Features: []string{"套内资源900M", "语音0.19元/分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G自由选38元",
			Specs:    plan.Spec{"data": 2.7, "calls": 0, "price": 38},
			Features: []string{"套内资源2700M", "语音0.19元/分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G飞享18元",
			Specs:    plan.Spec{"data": 1, "calls": 30, "price": 18},
			Features: []string{"套内通用流量1G", "套内通话30分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G飞享38元",
			Specs:    plan.Spec{"data": 3, "calls": 100, "price": 38},
			Features: []string{"套内通用流量3G", "套内通话100分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G飞享58元",
			Specs:    plan.Spec{"data": 5, "calls": 200, "price": 58},
			Features: []string{"套内通用流量5G", "套内通话200分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G节节高19元",
			Specs:    plan.Spec{"data": 6.6, "calls": 50, "price": 19},
			Features: []string{"首月1GB逐月递增", "套内通话50分钟"},
			Type:     "4G套餐",
		},
		{
			Name:     "4G节节高39元",
			Specs:    plan.Spec{"data": 13, "calls": 100, "price": 39},
			Features: []string{"首月4GB逐月递增", "套内通话100分钟"},
			Type:     "4G套餐",
		},
	}
}

func fiveGPackages() []plan.Product {
	return []plan.Product{
		{
			Name:     "5G智享128元",
			Specs:    plan.Spec{"data": 30, "calls": 500, "price": 128},
			Features: []string{"5G网络", "套内通用流量30G", "套内通话500分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G智享158元",
			Specs:    plan.Spec{"data": 40, "calls": 700, "price": 158},
			Features: []string{"5G网络", "套内通用流量40G", "套内通话700分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G智享198元",
			Specs:    plan.Spec{"data": 60, "calls": 1000, "price": 198},
			Features: []string{"5G网络", "套内通用流量60G", "套内通话1000分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G智享238元",
			Specs:    plan.Spec{"data": 80, "calls": 1000, "price": 238},
			Features: []string{"5G网络", "套内通用流量80G", "套内通话1000分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G智享298元",
			Specs:    plan.Spec{"data": 100, "calls": 1500, "price": 298},
			Features: []string{"5G网络", "套内通用流量100G", "套内通话1500分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G全家享99元",
			Specs:    plan.Spec{"data": 15, "calls": 300, "price": 99},
			Features: []string{"5G网络", "套内通用流量15G", "套内通话300分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G全家享139元",
			Specs:    plan.Spec{"data": 30, "calls": 1000, "price": 139},
			Features: []string{"5G网络", "套内通用流量30G", "套内通话1000分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G全家享169元",
			Specs:    plan.Spec{"data": 40, "calls": 1600, "price": 169},
			Features: []string{"5G网络", "套内通用流量40G", "套内通话1600分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G全家享219元",
			Specs:    plan.Spec{"data": 60, "calls": 2000, "price": 219},
			Features: []string{"5G网络", "套内通用流量60G", "套内通话2000分钟"},
			Type:     "5G套餐",
		},
		{
			Name:     "5G全家享319元",
			Specs:    plan.Spec{"data": 100, "calls": 2500, "price": 319},
			Features: []string{"5G网络", "套内通用流量100G", "套内通话2500分钟"},
			Type:     "5G套餐",
		},
	}
}

func otherPackages() []plan.Product {
	return []plan.Product{
		{
			Name:     "全球通畅享128元",
			Specs:    plan.Spec{"data": 20, "calls": 300, "price": 128},
			Features: []string{"流量放心用20G", "国内语音300分钟", "融合宽带50M"},
			Type:     "其他套餐",
		},
		{
			Name:     "全球通畅享188元",
			Specs:    plan.Spec{"data": 30, "calls": 500, "price": 188},
			Features: []string{"流量放心用30G", "国内语音500分钟", "融合宽带100M"},
			Type:     "其他套餐",
		},
		{
			Name:     "全球通畅享238元",
			Specs:    plan.Spec{"data": 40, "calls": 700, "price": 238},
			Features: []string{"流量放心用40G", "国内语音700分钟", "融合宽带200M"},
			Type:     "其他套餐",
		},
	}
}

// NewChinaUnicom returns a sample China Unicom catalog.
func NewChinaUnicom() *StaticSource {
	return NewStaticSource("中国联通", []plan.Product{
		{
			Name:     "联通冰激凌套餐199元",
			Specs:    plan.Spec{"data": 40, "calls": 1000, "price": 199},
			Features: []string{"5G网络", "腾讯视频会员"},
			Type:     "5G套餐",
		},
	})
}

// NewChinaTelecom returns a sample China Telecom catalog.
func NewChinaTelecom() *StaticSource {
	return NewStaticSource("中国电信", []plan.Product{
		{
			Name:     "电信5G畅享套餐129元",
			Specs:    plan.Spec{"data": 30, "calls": 500, "price": 129},
			Features: []string{"5G网络", "天翼云盘"},
			Type:     "5G套餐",
		},
	})
}
