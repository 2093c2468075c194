package constants

const (
	// Application-level constants
	DefaultParserVer = "1.0"

	// 关键词提取上限
	MaxJobKeywords = 15
	// 保底关键词提取上限
	MaxFallbackKeywords = 10

	// 评分权重
	KeywordWeight   = 0.25
	ContentWeight   = 0.25
	RelevanceWeight = 0.20
	FormatWeight    = 0.15
	ATSWeight       = 0.15

	// 无岗位描述时的默认相关性分数
	DefaultRelevanceScore = 75.0

	// ATS特殊字符惩罚阈值
	ATSSpecialCharLimit = 50

	// 经历条目增强的最小长度
	MinExperienceEnhanceLen = 50
	// 项目条目增强的最小长度
	MinProjectEnhanceLen = 30
)
