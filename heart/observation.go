// Package heart 提供心脏病预测的输入数据和结果标签
package heart

// NumFeatures 特征数量
const NumFeatures = 13

// FieldNames 字段名，按特征向量顺序
var FieldNames = [NumFeatures]string{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
	"thalach", "exang", "oldpeak", "slope", "ca", "thal",
}

// Observation 患者的13项临床指标，原样传给模型
type Observation struct {
	Age      int     `json:"age" jsonschema:"example=63" jsonschema_description:"Age in years"`
	Sex      int     `json:"sex" jsonschema:"example=1" jsonschema_description:"Sex (0=Female, 1=Male)"`
	Cp       int     `json:"cp" jsonschema:"example=3" jsonschema_description:"Chest pain type (0-3)"`
	Trestbps int     `json:"trestbps" jsonschema:"example=145" jsonschema_description:"Resting blood pressure"`
	Chol     int     `json:"chol" jsonschema:"example=233" jsonschema_description:"Serum cholesterol in mg/dl"`
	Fbs      int     `json:"fbs" jsonschema:"example=1" jsonschema_description:"Fasting blood sugar > 120 mg/dl (0=No, 1=Yes)"`
	Restecg  int     `json:"restecg" jsonschema:"example=0" jsonschema_description:"Resting electrocardiographic results (0-2)"`
	Thalach  int     `json:"thalach" jsonschema:"example=150" jsonschema_description:"Maximum heart rate achieved"`
	Exang    int     `json:"exang" jsonschema:"example=0" jsonschema_description:"Exercise induced angina (0=No, 1=Yes)"`
	Oldpeak  float64 `json:"oldpeak" jsonschema:"example=2.3" jsonschema_description:"ST depression induced by exercise"`
	Slope    int     `json:"slope" jsonschema:"example=0" jsonschema_description:"Slope of the peak exercise ST segment (0-2)"`
	Ca       int     `json:"ca" jsonschema:"example=0" jsonschema_description:"Number of major vessels colored by flourosopy (0-3)"`
	Thal     int     `json:"thal" jsonschema:"example=1" jsonschema_description:"Thalassemia (1-3)"`
}

// Vector 按FieldNames顺序排列的特征向量，可作为map键
type Vector [NumFeatures]float64

// Vector 组装模型输入，顺序必须与FieldNames一致
func (o Observation) Vector() Vector {
	return Vector{
		float64(o.Age),
		float64(o.Sex),
		float64(o.Cp),
		float64(o.Trestbps),
		float64(o.Chol),
		float64(o.Fbs),
		float64(o.Restecg),
		float64(o.Thalach),
		float64(o.Exang),
		o.Oldpeak,
		float64(o.Slope),
		float64(o.Ca),
		float64(o.Thal),
	}
}

// Slice 返回向量的切片副本
func (v Vector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}
