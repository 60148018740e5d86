package browser

func viewportScript() string {
	return `(() => {
		return {
			width: window.innerWidth,
			height: window.innerHeight
		};
	})()`
}

func scrollOffsetScript() string {
	return `(() => {
		return {
			x: window.scrollX,
			y: window.scrollY
		};
	})()`
}

func scrollablesScript() string {
	return `(() => {
		try {
			const result = [];
			const all = document.querySelectorAll('*');

			const generateSelector = (el) => {
				const tag = el.tagName.toLowerCase();

				if (el.id && /^[a-zA-Z]/.test(el.id) && !el.id.includes(' ')) {
					return '#' + el.id;
				}

				if (el.className && typeof el.className === 'string') {
					const classes = el.className.split(' ')
						.filter(c => c && !c.match(/^[0-9]/) && c.length < 40)
						.slice(0, 2);
					if (classes.length > 0) {
						return tag + '.' + classes.join('.');
					}
				}

				return tag;
			};

			for (const el of all) {
				const style = window.getComputedStyle(el);
				const scrollable = (
					(style.overflowY === 'auto' || style.overflowY === 'scroll' ||
					 style.overflowX === 'auto' || style.overflowX === 'scroll') &&
					(el.scrollHeight > el.clientHeight || el.scrollWidth > el.clientWidth)
				);

				if (!scrollable) continue;

				const rect = el.getBoundingClientRect();

				result.push({
					tag: el.tagName.toLowerCase(),
					selector: generateSelector(el),
					x: rect.x,
					y: rect.y,
					width: rect.width,
					height: rect.height
				});

				if (result.length >= 20) break;
			}

			return result;
		} catch (e) {
			return [];
		}
	})()`
}
