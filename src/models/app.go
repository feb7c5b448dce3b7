package models

// 数据表列名
const (
	ColApp             = "App"
	ColCategory        = "Category"
	ColRating          = "Rating"
	ColReviews         = "Reviews"
	ColSizeMBs         = "Size_MBs"
	ColInstalls        = "Installs"
	ColType            = "Type"
	ColPrice           = "Price"
	ColContentRating   = "Content_Rating"
	ColGenres          = "Genres"
	ColLastUpdated     = "Last_Updated"
	ColAndroidVer      = "Android_Ver"
	ColRevenueEstimate = "Revenue_Estimate"
	ColGenre           = "Genre"
)

// 应用类型
const (
	TypeFree = "Free"
	TypePaid = "Paid"
)

// RequiredColumns 清洗后保留并参与分析的列
var RequiredColumns = []string{
	ColApp, ColCategory, ColRating, ColReviews, ColSizeMBs,
	ColInstalls, ColType, ColPrice, ColContentRating, ColGenres,
}

// AppRecord 清洗后的一条应用记录
type AppRecord struct {
	Name            string
	Category        string
	Rating          float64
	Reviews         int
	SizeMBs         float64
	Installs        int
	Type            string
	Price           float64
	ContentRating   string
	Genres          string
	RevenueEstimate float64
}
