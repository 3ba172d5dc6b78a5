package forms

import (
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

const ImageClearField = "image-clear"

type PostForm struct {
	fieldSet
	Text  *Field
	Group *Field
	Image *Field

	groups  []*model.Group
	cleaned *PostData
}

// PostData is the validated content of a bound PostForm
type PostData struct {
	Text    string
	GroupId *int64
	Image   *Upload
	// ClearImage is set when the stored image should be dropped
	ClearImage bool
}

func NewPostForm(groups []*model.Group) *PostForm {
	form := &PostForm{
		Text: &Field{
			Name:     "text",
			Label:    "Текст",
			HelpText: "Текст поста",
			Kind:     KindText,
			Required: true,
		},
		Group: &Field{
			Name:     "group",
			Label:    "Группа",
			HelpText: "Группа поста",
			Kind:     KindChoice,
			Choices:  []Choice{{Value: "", Label: "---------"}},
		},
		Image: &Field{
			Name:     "image",
			Label:    "Картинка",
			HelpText: "Загрузите картинку",
			Kind:     KindFile,
		},
		groups: groups,
	}
	for _, group := range groups {
		form.Group.Choices = append(form.Group.Choices, Choice{
			Value: strconv.FormatInt(group.Id, 10),
			Label: group.String(),
		})
	}
	form.fieldSet = fieldSet{form.Text, form.Group, form.Image}
	return form
}

// EditPostForm is pre-filled with the post being edited
func EditPostForm(post *model.Post, groups []*model.Group) *PostForm {
	form := NewPostForm(groups)
	form.Text.Value = post.Text
	if post.Group != nil {
		form.Group.Value = strconv.FormatInt(post.Group.Id, 10)
	}
	form.Image.Current = post.Image
	return form
}

// Bind validates the submitted values. image is nil when nothing was uploaded
func (pf *PostForm) Bind(values url.Values, image *multipart.FileHeader) bool {
	pf.resetErrors()
	data := &PostData{
		Text: cleanText(pf.Text, values),
	}

	pf.Group.Value = values.Get(pf.Group.Name)
	if pf.Group.Value != "" {
		if group := pf.findGroup(pf.Group.Value); group != nil {
			data.GroupId = &group.Id
		} else {
			pf.Group.AddError(ErrInvalidChoice)
		}
	}

	if image != nil {
		upload, msg := readImage(image)
		if msg != "" {
			pf.Image.AddError(msg)
		}
		data.Image = upload
	} else if values.Get(ImageClearField) != "" {
		data.ClearImage = true
	}

	if !pf.Valid() {
		return false
	}
	pf.cleaned = data
	return true
}

// Cleaned is only set after a successful Bind
func (pf *PostForm) Cleaned() *PostData {
	return pf.cleaned
}

// RejectGroup drops the chosen group from the choices after it turned out
// to be gone from the store
func (pf *PostForm) RejectGroup() {
	choices := pf.Group.Choices[:0]
	for _, choice := range pf.Group.Choices {
		if choice.Value != pf.Group.Value {
			choices = append(choices, choice)
		}
	}
	pf.Group.Choices = choices
	pf.Group.AddError(ErrInvalidChoice)
	pf.cleaned = nil
}

func (pf *PostForm) findGroup(raw string) *model.Group {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	for _, group := range pf.groups {
		if group.Id == id {
			return group
		}
	}
	return nil
}

func sanitize(val string) string {
	return util.XSSSanitize(val)
}
