package heart

// Label 预测结果标签
type Label string

const (
	Detected    Label = "Heart Disease Detected"
	NotDetected Label = "No Heart Disease"
)

// LabelFor 类别转标签：只有1表示患病，其他值一律视为未患病
func LabelFor(class int) Label {
	if class == 1 {
		return Detected
	}
	return NotDetected
}

func (l Label) String() string { return string(l) }
